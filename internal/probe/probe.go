// Package probe runs the fixed create/list/filter/update/re-list sequence
// against an issue tracker and prints every reply.
package probe

import (
	"context"
	"fmt"
	"io"

	"github.com/dt-pm-tools/issue-probe/internal/render"
	"github.com/dt-pm-tools/issue-probe/internal/tracker"
	"github.com/sirupsen/logrus"
)

// Tracker is the subset of the tracker API the prober drives.
type Tracker interface {
	Create(ctx context.Context, project string, issue tracker.NewIssue) (*tracker.Response, error)
	List(ctx context.Context, project string, filter tracker.Filter) (*tracker.Response, error)
	Update(ctx context.Context, project string, upd tracker.Update) (*tracker.Response, error)
	Delete(ctx context.Context, project string, id string) (*tracker.Response, error)
}

// Payloads sent by the probe.
var (
	TestIssue = tracker.NewIssue{
		Title:      "Test",
		Text:       "Texto de prueba",
		CreatedBy:  "Copilot",
		AssignedTo: "Felipe",
		StatusText: "Pendiente",
	}
	ClosedFilter = tracker.Filter{"open": "false"}
)

// UpdatedTitle is the title the update step writes.
const UpdatedTitle = "Actualizado"

// Step labels, printed before each reply.
const (
	StepCreate     = "POST"
	StepList       = "GET"
	StepListClosed = "GET con filtro"
	StepUpdate     = "PUT"
	StepRelist     = "GET después de PUT"
	StepDelete     = "DELETE"
)

// StepResult records one executed request.
type StepResult struct {
	Name       string
	StatusCode int
}

// Report is what a run observed.
type Report struct {
	IssueID string
	Steps   []StepResult
}

// Options tweak a run.
type Options struct {
	// Cleanup deletes the created issue after the final listing.
	Cleanup bool
}

// Prober runs the sequence against one project.
type Prober struct {
	client   Tracker
	project  string
	out      io.Writer
	renderer *render.Renderer
	log      logrus.FieldLogger
	opts     Options
}

// New creates a Prober. Replies are printed to out.
func New(client Tracker, project string, out io.Writer, renderer *render.Renderer, logger logrus.FieldLogger, opts Options) *Prober {
	return &Prober{
		client:   client,
		project:  project,
		out:      out,
		renderer: renderer,
		log:      logger,
		opts:     opts,
	}
}

// Run executes create, list, list open=false, update (only when create
// returned an _id), list again, and optionally delete. The first error
// aborts the run; the partial report is still returned.
func (p *Prober) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	log := p.log.WithField("project", p.project)

	resp, err := p.client.Create(ctx, p.project, TestIssue)
	if err = p.record(report, StepCreate, resp, err); err != nil {
		return report, err
	}
	report.IssueID = tracker.IDOf(resp)
	if report.IssueID == "" {
		log.Warn("create response has no _id; update will be skipped")
	} else {
		log.WithField("id", report.IssueID).Debug("captured issue id")
	}

	resp, err = p.client.List(ctx, p.project, nil)
	if err = p.record(report, StepList, resp, err); err != nil {
		return report, err
	}
	p.logCount(log, StepList, resp)

	resp, err = p.client.List(ctx, p.project, ClosedFilter)
	if err = p.record(report, StepListClosed, resp, err); err != nil {
		return report, err
	}
	p.logCount(log, StepListClosed, resp)

	if report.IssueID != "" {
		resp, err = p.client.Update(ctx, p.project, tracker.Update{
			ID:    report.IssueID,
			Title: UpdatedTitle,
			Open:  "false",
		})
		if err = p.record(report, StepUpdate, resp, err); err != nil {
			return report, err
		}
	}

	resp, err = p.client.List(ctx, p.project, nil)
	if err = p.record(report, StepRelist, resp, err); err != nil {
		return report, err
	}
	p.logCount(log, StepRelist, resp)

	if p.opts.Cleanup && report.IssueID != "" {
		resp, err = p.client.Delete(ctx, p.project, report.IssueID)
		if err = p.record(report, StepDelete, resp, err); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (p *Prober) record(report *Report, step string, resp *tracker.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", step, err)
	}
	report.Steps = append(report.Steps, StepResult{Name: step, StatusCode: resp.StatusCode})

	body, err := p.renderer.Render(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", step, err)
	}
	fmt.Fprintf(p.out, "%s: %d%s%s\n", step, resp.StatusCode, p.renderer.Separator(), body)
	return nil
}

// logCount notes how many issues a listing returned; non-array bodies are
// printed as-is and not counted.
func (p *Prober) logCount(log logrus.FieldLogger, step string, resp *tracker.Response) {
	if _, ok := resp.Body.([]any); !ok {
		return
	}
	issues, err := tracker.Issues(resp)
	if err != nil {
		log.WithError(err).Debug("listing is not a list of issues")
		return
	}
	log.WithFields(logrus.Fields{"step": step, "count": len(issues)}).Info("listed issues")
}
