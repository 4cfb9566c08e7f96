package email

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/bedspace-reports/internal/dates"
	"github.com/codr1/bedspace-reports/internal/reports"
)

type sentEmail struct {
	recipient string
	subject   string
	body      string
}

type fakeEmailSender struct {
	mu      sync.Mutex
	sent    []sentEmail
	failFor string
	ctxErrs []error
}

func (f *fakeEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if recipient == f.failFor {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, sentEmail{recipient: recipient, subject: subject, body: body})
	return nil
}

func januaryDigest(t *testing.T) DigestDetails {
	t.Helper()
	start, err := dates.Parse("2025-01-01")
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	end, err := dates.Parse("2025-01-31")
	if err != nil {
		t.Fatalf("parse end: %v", err)
	}
	hope := reports.PremisesSummary{
		ProbationRegion: "Yorkshire",
		PDU:             "Leeds",
		PremisesName:    "Hope House",
		Bedspaces:       2,
		OnlineDays:      62,
		TotalBookedDays: 31,
	}
	return DigestDetails{
		Period:   dates.NewRange(start, end),
		Premises: []reports.PremisesSummary{hope},
		Total:    hope,
	}
}

func TestBuildOccupancyDigest(t *testing.T) {
	digest := BuildOccupancyDigest(januaryDigest(t))

	if digest.Subject != "Bedspace occupancy digest: January 2025" {
		t.Fatalf("subject = %q", digest.Subject)
	}
	for _, want := range []string{
		"(2025-01-01 to 2025-01-31)",
		"Scope: All regions",
		"Yorkshire, Leeds, Hope House",
		"Online days: 62",
		"Booked days: 31",
		"Average occupancy: 50.0%",
	} {
		if !strings.Contains(digest.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, digest.Body)
		}
	}
}

func TestBuildOccupancyDigest_NoPremises(t *testing.T) {
	details := januaryDigest(t)
	details.Premises = nil
	details.Total = reports.PremisesSummary{}
	details.Scope = "CAS3"

	digest := BuildOccupancyDigest(details)
	if !strings.Contains(digest.Body, "No bedspaces were online") || !strings.Contains(digest.Body, "Scope: CAS3") {
		t.Fatalf("body:\n%s", digest.Body)
	}
	if !strings.Contains(digest.Body, "Average occupancy: 0.0%") {
		t.Fatalf("body:\n%s", digest.Body)
	}
}

func TestSendDigest_ContinuesAfterFailure(t *testing.T) {
	sender := &fakeEmailSender{failFor: "bounce@example.com"}
	digest := BuildOccupancyDigest(januaryDigest(t))

	err := SendDigest(context.Background(), sender, []string{"a@example.com", "bounce@example.com", " ", "b@example.com"}, digest)
	if err == nil || !strings.Contains(err.Error(), "bounce@example.com") {
		t.Fatalf("expected failure naming bounced recipient, got %v", err)
	}
	if len(sender.sent) != 2 || sender.sent[0].recipient != "a@example.com" || sender.sent[1].recipient != "b@example.com" {
		t.Fatalf("sent = %+v", sender.sent)
	}
}

func TestSendDigest_DetachedFromCancelledParent(t *testing.T) {
	sender := &fakeEmailSender{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := SendDigest(ctx, sender, []string{"a@example.com"}, DigestEmail{Subject: "s", Body: "b"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sender.ctxErrs) != 1 || sender.ctxErrs[0] != nil {
		t.Fatalf("send context errors = %v", sender.ctxErrs)
	}
}

func TestSendDigest_Validation(t *testing.T) {
	if err := SendDigest(context.Background(), nil, []string{"a@example.com"}, DigestEmail{Subject: "s", Body: "b"}); err == nil {
		t.Fatal("expected error without sender")
	}
	if err := SendDigest(context.Background(), &fakeEmailSender{}, nil, DigestEmail{}); err == nil {
		t.Fatal("expected error for empty digest")
	}
}

func TestNewEmailContext_Timeout(t *testing.T) {
	ctx, cancel := newEmailContext(context.Background(), time.Minute)
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected deadline")
	}
}
