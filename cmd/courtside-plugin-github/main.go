// Command courtside-plugin-github syncs tasks against GitHub issues.
//
// Tasks are projected into labeled, milestoned issues on first sight and
// matched back by the task ref footer in the issue body afterwards.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	domainIssue "github.com/felixgeelhaar/courtside/pkg/domain/issue"
	domainPlugin "github.com/felixgeelhaar/courtside/pkg/domain/plugin"
	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
	infraPlugin "github.com/felixgeelhaar/courtside/pkg/plugin"
	"github.com/google/go-github/v69/github"
	"github.com/hashicorp/go-plugin"
	"golang.org/x/oauth2"
)

type GitHubSyncer struct {
	token string
	repo  string
	owner string
	name  string

	// client is built in Init unless a test injected one.
	client *github.Client

	projector  *domainIssue.Projector
	reconciler *domainIssue.StatusReconciler
}

func (s *GitHubSyncer) Init(config map[string]string) error {
	if val, ok := config["token"]; ok {
		s.token = val
	}
	if val, ok := config["repo"]; ok {
		s.repo = val
	}
	// Fallback to env vars if not provided in config
	if s.token == "" {
		s.token = os.Getenv("GITHUB_TOKEN")
	}
	if s.repo == "" {
		s.repo = os.Getenv("GITHUB_REPO")
	}

	if s.repo != "" {
		owner, name, ok := strings.Cut(s.repo, "/")
		if !ok || owner == "" || name == "" {
			return fmt.Errorf("invalid repo %q, expected owner/name", s.repo)
		}
		s.owner = owner
		s.name = name
	}

	if s.client == nil && s.token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.token})
		s.client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	}

	s.projector = domainIssue.NewProjector()
	s.reconciler = domainIssue.NewStatusReconciler()
	return nil
}

func (s *GitHubSyncer) Sync(tasks []tracker.Task, state *tracker.SyncState) (*domainPlugin.SyncResult, error) {
	log.Printf("GitHub Syncer: syncing %d tasks for repo %s", len(tasks), s.repo)

	if s.client == nil {
		log.Println("GitHub Syncer: GITHUB_TOKEN not set, skipping API calls.")
		return nil, nil
	}
	if s.owner == "" {
		return nil, fmt.Errorf("no repo configured")
	}

	ctx := context.Background()

	milestones, err := s.fetchMilestones(ctx)
	if err != nil {
		return nil, err
	}
	remote, err := s.fetchProjectIssues(ctx)
	if err != nil {
		return nil, err
	}

	result := &domainPlugin.SyncResult{
		StatusUpdates: make(map[string]tracker.TaskStatus),
		LinkUpdates:   make(map[string]tracker.IssueRef),
	}

	for _, task := range tasks {
		ghIssue, linked := remote[task.ID]
		if !linked {
			ref, err := s.createIssue(ctx, task, milestones)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("task %s: %v", task.ID, err))
				continue
			}
			result.LinkUpdates[task.ID] = *ref
			continue
		}

		if _, ok := state.Refs[task.ID]; !ok {
			result.LinkUpdates[task.ID] = issueRefOf(ghIssue)
		}

		updated := s.reconciler.ApplyIssueToTask(task, toDomainIssue(ghIssue))
		if updated.Status != task.Status {
			result.StatusUpdates[task.ID] = updated.Status
		}
	}

	return result, nil
}

// Push mirrors a local status change onto the matching issue.
func (s *GitHubSyncer) Push(taskID string, status tracker.TaskStatus) error {
	if s.client == nil {
		return fmt.Errorf("not connected")
	}

	ctx := context.Background()
	remote, err := s.fetchProjectIssues(ctx)
	if err != nil {
		return err
	}
	ghIssue, ok := remote[taskID]
	if !ok {
		return fmt.Errorf("no issue for task %s", taskID)
	}

	before := toDomainIssue(ghIssue)
	after := s.reconciler.ApplyTaskStatus(before, tracker.Task{ID: taskID, Status: status})
	if after.State == before.State && labelNames(after.Labels) == labelNames(before.Labels) {
		return nil
	}

	labels := make([]string, 0, len(after.Labels))
	for _, l := range after.Labels {
		labels = append(labels, l.Name)
	}
	req := &github.IssueRequest{
		State:  github.Ptr(string(after.State)),
		Labels: &labels,
	}
	_, _, err = s.client.Issues.Edit(ctx, s.owner, s.name, ghIssue.GetNumber(), req)
	return err
}

func (s *GitHubSyncer) fetchMilestones(ctx context.Context) (domainIssue.MilestoneLookup, error) {
	lookup := make(domainIssue.MilestoneLookup)
	opts := &github.MilestoneListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		milestones, resp, err := s.client.Issues.ListMilestones(ctx, s.owner, s.name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list milestones: %w", err)
		}
		for _, m := range milestones {
			lookup[m.GetTitle()] = &domainIssue.Milestone{
				ID:           fmt.Sprintf("%d", m.GetNumber()),
				Title:        m.GetTitle(),
				DueOn:        dueOn(m.DueOn),
				OpenIssues:   m.GetOpenIssues(),
				ClosedIssues: m.GetClosedIssues(),
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return lookup, nil
}

// fetchProjectIssues returns the project's issues keyed by the task id in
// their body footer. Issues without a footer are ignored.
func (s *GitHubSyncer) fetchProjectIssues(ctx context.Context) (map[string]*github.Issue, error) {
	byTask := make(map[string]*github.Issue)
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		Labels:      []string{domainIssue.ProjectLabel},
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		issues, resp, err := s.client.Issues.ListByRepo(ctx, s.owner, s.name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}
		for _, gh := range issues {
			if gh.IsPullRequest() {
				continue
			}
			if id := domainIssue.ExtractTaskRef(gh.GetBody()); id != "" {
				byTask[id] = gh
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return byTask, nil
}

func (s *GitHubSyncer) createIssue(ctx context.Context, task tracker.Task, milestones domainIssue.MilestoneLookup) (*tracker.IssueRef, error) {
	projected, err := s.projector.Project(task, milestones)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(projected.Labels))
	for _, l := range projected.Labels {
		labels = append(labels, l.Name)
	}
	req := &github.IssueRequest{
		Title:  github.Ptr(projected.Title),
		Body:   github.Ptr(projected.Body),
		Labels: &labels,
	}
	if projected.Milestone != nil {
		var number int
		if _, err := fmt.Sscanf(projected.Milestone.ID, "%d", &number); err == nil {
			req.Milestone = github.Ptr(number)
		}
	}

	created, _, err := s.client.Issues.Create(ctx, s.owner, s.name, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	log.Printf("GitHub Syncer: created issue #%d for task %s", created.GetNumber(), task.ID)
	ref := issueRefOf(created)
	return &ref, nil
}

func issueRefOf(gh *github.Issue) tracker.IssueRef {
	return tracker.IssueRef{
		ID:     fmt.Sprintf("%d", gh.GetID()),
		Number: gh.GetNumber(),
		URL:    gh.GetHTMLURL(),
	}
}

func toDomainIssue(gh *github.Issue) *domainIssue.Issue {
	labels := make([]domainIssue.Label, 0, len(gh.Labels))
	for _, l := range gh.Labels {
		labels = append(labels, domainIssue.Label{
			Name:        l.GetName(),
			Color:       l.GetColor(),
			Description: l.GetDescription(),
		})
	}

	state := domainIssue.StateOpen
	if gh.GetState() == "closed" {
		state = domainIssue.StateClosed
	}

	assignees := make([]string, 0, len(gh.Assignees))
	for _, a := range gh.Assignees {
		assignees = append(assignees, a.GetLogin())
	}

	return &domainIssue.Issue{
		ID:        fmt.Sprintf("%d", gh.GetID()),
		Number:    gh.GetNumber(),
		Title:     gh.GetTitle(),
		Body:      gh.GetBody(),
		Labels:    labels,
		State:     state,
		Assignees: assignees,
		CreatedAt: gh.GetCreatedAt().Time,
		UpdatedAt: gh.GetUpdatedAt().Time,
	}
}

func labelNames(labels []domainIssue.Label) string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return strings.Join(names, ",")
}

func dueOn(ts *github.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.Time
	return &t
}

func main() {
	s := &GitHubSyncer{
		token: os.Getenv("GITHUB_TOKEN"),
		repo:  os.Getenv("GITHUB_REPO"),
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: infraPlugin.HandshakeConfig,
		Plugins: map[string]plugin.Plugin{
			"syncer": &domainPlugin.SyncerPlugin{Impl: s},
		},
	})
}
