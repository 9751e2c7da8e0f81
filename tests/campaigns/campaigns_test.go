package campaigns_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/societyfixer/hustings/internal/campaigns"
	"github.com/societyfixer/hustings/internal/moderation"
	"github.com/societyfixer/hustings/pkg/pagination"
)

func safeClassifier() classifierFunc {
	return func(ctx context.Context, text string) (string, error) {
		return "SAFE", nil
	}
}

func newSystem(conn *fakeConn, store *fakeStore, classifier moderation.Classifier) campaigns.System {
	gate := moderation.NewGate(classifier, discard())
	return campaigns.New(newFakeDB(conn), store, gate, discard(), pagination.Config{
		DefaultPageSize: 6,
		MaxPageSize:     24,
	})
}

func validCreate() campaigns.CreateCommand {
	return campaigns.CreateCommand{
		CandidateName: "Ada Osei",
		ElectionName:  "City Council 2026",
		Scope:         campaigns.ScopeLocal,
	}
}

func TestValidScope(t *testing.T) {
	tests := []struct {
		scope string
		want  bool
	}{
		{"Local", true},
		{"State", true},
		{"National", true},
		{"Galactic", false},
		{"local", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := campaigns.ValidScope(tt.scope); got != tt.want {
			t.Errorf("ValidScope(%q) = %v, want %v", tt.scope, got, tt.want)
		}
	}
}

func TestUpdateCommandApply(t *testing.T) {
	name := "New Name"
	policies := "<p>New platform</p>"

	c := campaigns.Campaign{
		CandidateName:    "Old Name",
		ElectionName:     "Old Election",
		ProposedPolicies: "<p>Old platform</p>",
	}

	cmd := campaigns.UpdateCommand{
		CandidateName:    &name,
		ProposedPolicies: &policies,
	}
	cmd.Apply(&c)

	if c.CandidateName != "New Name" {
		t.Errorf("CandidateName = %q, want New Name", c.CandidateName)
	}
	if c.ProposedPolicies != "<p>New platform</p>" {
		t.Errorf("ProposedPolicies = %q", c.ProposedPolicies)
	}
	if c.ElectionName != "Old Election" {
		t.Errorf("nil field modified: ElectionName = %q", c.ElectionName)
	}
}

func TestMediaURLs(t *testing.T) {
	tests := []struct {
		name     string
		portrait string
		resume   string
		want     int
	}{
		{"both present", "http://x/p.jpg", "http://x/r.pdf", 2},
		{"portrait only", "http://x/p.jpg", "", 1},
		{"none", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := campaigns.Campaign{PortraitURL: tt.portrait, ResumeURL: tt.resume}
			if got := len(c.MediaURLs()); got != tt.want {
				t.Errorf("MediaURLs() length = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", campaigns.ErrNotFound, http.StatusNotFound},
		{"duplicate", campaigns.ErrDuplicate, http.StatusConflict},
		{"forbidden", campaigns.ErrForbidden, http.StatusForbidden},
		{"invalid", campaigns.ErrInvalid, http.StatusBadRequest},
		{"moderation rejection", moderation.ErrRejected, http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := campaigns.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*campaigns.CreateCommand)
	}{
		{"missing candidate name", func(c *campaigns.CreateCommand) { c.CandidateName = "  " }},
		{"missing election name", func(c *campaigns.CreateCommand) { c.ElectionName = "" }},
		{"unknown scope", func(c *campaigns.CreateCommand) { c.Scope = "Galactic" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &fakeConn{}
			sys := newSystem(conn, &fakeStore{}, safeClassifier())

			cmd := validCreate()
			tt.mutate(&cmd)

			_, err := sys.Create(context.Background(), uuid.New(), cmd)
			if !errors.Is(err, campaigns.ErrInvalid) {
				t.Fatalf("Create() error = %v, want ErrInvalid", err)
			}
			if len(conn.queries) != 0 {
				t.Error("invalid command should not reach the database")
			}
		})
	}
}

func TestCreateModerationRejection(t *testing.T) {
	conn := &fakeConn{}
	sys := newSystem(conn, &fakeStore{}, classifierFunc(func(ctx context.Context, text string) (string, error) {
		return "UNSAFE", nil
	}))

	_, err := sys.Create(context.Background(), uuid.New(), validCreate())
	if !errors.Is(err, moderation.ErrRejected) {
		t.Fatalf("Create() error = %v, want ErrRejected", err)
	}
	if !strings.Contains(err.Error(), moderation.RejectionReason) {
		t.Errorf("error %q should carry the rejection reason", err)
	}
	if len(conn.queries) != 0 {
		t.Error("rejected content should never reach the database")
	}
}

func TestCreateModeratesStrippedText(t *testing.T) {
	var received string

	conn := &fakeConn{}
	queueRows(conn, campaignRow(uuid.New(), uuid.New(), "", ""))

	sys := newSystem(conn, &fakeStore{}, classifierFunc(func(ctx context.Context, text string) (string, error) {
		received = text
		return "SAFE", nil
	}))

	cmd := validCreate()
	cmd.ProposedPolicies = "<p>Lower <strong>taxes</strong></p>"

	if _, err := sys.Create(context.Background(), uuid.New(), cmd); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if strings.Contains(received, "<") {
		t.Errorf("classifier received markup: %q", received)
	}
	if !strings.Contains(received, "Ada Osei") {
		t.Errorf("classifier text missing candidate name: %q", received)
	}
}

func TestCreateSanitizesPolicies(t *testing.T) {
	conn := &fakeConn{}
	queueRows(conn, campaignRow(uuid.New(), uuid.New(), "", ""))

	sys := newSystem(conn, &fakeStore{}, safeClassifier())

	cmd := validCreate()
	cmd.ProposedPolicies = `<p>Platform</p><script>alert("x")</script>`

	if _, err := sys.Create(context.Background(), uuid.New(), cmd); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(conn.queries) != 1 {
		t.Fatalf("queries = %d, want 1 insert", len(conn.queries))
	}

	stored, ok := conn.queries[0].args[9].(string)
	if !ok {
		t.Fatalf("proposed_policies arg is %T, want string", conn.queries[0].args[9])
	}
	if strings.Contains(stored, "<script>") {
		t.Errorf("stored policies contain script tag: %q", stored)
	}
	if !strings.Contains(stored, "<p>Platform</p>") {
		t.Errorf("stored policies lost formatting: %q", stored)
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	owner := uuid.New()
	intruder := uuid.New()
	id := uuid.New()

	conn := &fakeConn{}
	queueRows(conn, campaignRow(id, owner, "", ""))

	sys := newSystem(conn, &fakeStore{}, safeClassifier())

	name := "Hijacked"
	_, err := sys.Update(context.Background(), intruder, id, campaigns.UpdateCommand{CandidateName: &name})
	if !errors.Is(err, campaigns.ErrForbidden) {
		t.Fatalf("Update() error = %v, want ErrForbidden", err)
	}
	if len(conn.queries) != 1 {
		t.Errorf("queries = %d, want only the ownership lookup", len(conn.queries))
	}
	if len(conn.execs) != 0 {
		t.Error("non-owner update should not execute any statement")
	}
}

func TestUpdateInvalidScope(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	conn := &fakeConn{}
	queueRows(conn, campaignRow(id, owner, "", ""))

	sys := newSystem(conn, &fakeStore{}, safeClassifier())

	scope := "Galactic"
	_, err := sys.Update(context.Background(), owner, id, campaigns.UpdateCommand{Scope: &scope})
	if !errors.Is(err, campaigns.ErrInvalid) {
		t.Fatalf("Update() error = %v, want ErrInvalid", err)
	}
}

func TestUpdateSanitizesAndPersists(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	conn := &fakeConn{}
	queueRows(conn, campaignRow(id, owner, "", ""))
	queueRows(conn, campaignRow(id, owner, "", ""))

	sys := newSystem(conn, &fakeStore{}, safeClassifier())

	policies := `<p>Updated</p><script>alert(1)</script>`
	_, err := sys.Update(context.Background(), owner, id, campaigns.UpdateCommand{ProposedPolicies: &policies})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if len(conn.queries) != 2 {
		t.Fatalf("queries = %d, want lookup plus update", len(conn.queries))
	}

	update := conn.queries[1]
	if !strings.Contains(update.query, "UPDATE campaigns") {
		t.Fatalf("second query is not the update: %q", update.query)
	}
	if !strings.Contains(update.query, "user_id = $17") {
		t.Errorf("update must be scoped to the owner: %q", update.query)
	}

	stored, _ := update.args[7].(string)
	if strings.Contains(stored, "<script>") {
		t.Errorf("stored policies contain script tag: %q", stored)
	}
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	owner := uuid.New()
	intruder := uuid.New()
	id := uuid.New()

	conn := &fakeConn{}
	queueRows(conn, campaignRow(id, owner, "", ""))
	store := &fakeStore{}

	sys := newSystem(conn, store, safeClassifier())

	err := sys.Delete(context.Background(), intruder, id)
	if !errors.Is(err, campaigns.ErrForbidden) {
		t.Fatalf("Delete() error = %v, want ErrForbidden", err)
	}
	if len(store.removedRefs()) != 0 {
		t.Error("non-owner delete should not touch media")
	}
	if len(conn.execs) != 0 {
		t.Error("non-owner delete should not execute any statement")
	}
}

func TestDeleteRemovesMediaThenRecord(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	portrait := "http://localhost:8080/storage/v1/object/public/candidate-portraits/u/p.jpg"
	resume := "http://localhost:8080/storage/v1/object/public/candidate-resumes/u/cv.pdf"

	conn := &fakeConn{}
	queueRows(conn, campaignRow(id, owner, portrait, resume))
	store := &fakeStore{}

	sys := newSystem(conn, store, safeClassifier())

	if err := sys.Delete(context.Background(), owner, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	refs := store.removedRefs()
	if len(refs) != 2 {
		t.Fatalf("removed refs = %d, want 2", len(refs))
	}

	want := map[string]string{
		"candidate-portraits": "u/p.jpg",
		"candidate-resumes":   "u/cv.pdf",
	}
	for _, ref := range refs {
		if want[ref.Bucket] != ref.Key {
			t.Errorf("unexpected removal %s/%s", ref.Bucket, ref.Key)
		}
	}

	if len(conn.execs) != 1 {
		t.Fatalf("execs = %d, want 1 delete", len(conn.execs))
	}
	if !strings.Contains(conn.execs[0].query, "DELETE FROM campaigns") {
		t.Errorf("exec is not the record delete: %q", conn.execs[0].query)
	}
}

func TestDeleteSkipsUnparseableMedia(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	conn := &fakeConn{}
	queueRows(conn, campaignRow(id, owner, "https://images.example.com/external.jpg", ""))
	store := &fakeStore{}

	sys := newSystem(conn, store, safeClassifier())

	if err := sys.Delete(context.Background(), owner, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(store.removedRefs()) != 0 {
		t.Error("external media URL should not produce a removal")
	}
	if len(conn.execs) != 1 {
		t.Error("record delete should still run")
	}
}

func TestDeleteRecordFailureIsFatal(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	portrait := "http://localhost:8080/storage/v1/object/public/candidate-portraits/u/p.jpg"

	conn := &fakeConn{execErr: errors.New("connection reset")}
	queueRows(conn, campaignRow(id, owner, portrait, ""))
	store := &fakeStore{}

	sys := newSystem(conn, store, safeClassifier())

	err := sys.Delete(context.Background(), owner, id)
	if err == nil {
		t.Fatal("expected error when record delete fails")
	}

	// media cleanup still ran before the fatal record delete
	if len(store.removedRefs()) != 1 {
		t.Errorf("removed refs = %d, want 1", len(store.removedRefs()))
	}
}

func TestFindNotFound(t *testing.T) {
	conn := &fakeConn{}
	sys := newSystem(conn, &fakeStore{}, safeClassifier())

	_, err := sys.Find(context.Background(), uuid.New())
	if !errors.Is(err, campaigns.ErrNotFound) {
		t.Fatalf("Find() error = %v, want ErrNotFound", err)
	}
}

func TestListAppliesSearchAndOrder(t *testing.T) {
	owner := uuid.New()

	conn := &fakeConn{}
	queueRows(conn,
		campaignRow(uuid.New(), owner, "", ""),
		campaignRow(uuid.New(), owner, "", ""),
	)

	sys := newSystem(conn, &fakeStore{}, safeClassifier())

	search := "mayor"
	result, err := sys.List(context.Background(), pagination.PageRequest{
		Page:     1,
		PageSize: 2,
		Search:   &search,
	}, campaigns.Filters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(result.Data) != 2 {
		t.Errorf("Data length = %d, want 2", len(result.Data))
	}
	if !result.HasMore {
		t.Error("full page should report more")
	}

	q := conn.queries[0].query
	if !strings.Contains(q, "ORDER BY c.created_at DESC") {
		t.Errorf("missing newest-first ordering: %q", q)
	}
	if !strings.Contains(q, "c.candidate_name ILIKE $1 OR c.position_name ILIKE $2 OR c.election_region ILIKE $3") {
		t.Errorf("missing search condition: %q", q)
	}
	if !strings.Contains(q, "LIMIT 2 OFFSET 0") {
		t.Errorf("missing pagination clause: %q", q)
	}
}

func TestListOwnerScoped(t *testing.T) {
	owner := uuid.New()

	conn := &fakeConn{}
	sys := newSystem(conn, &fakeStore{}, safeClassifier())

	result, err := sys.List(context.Background(), pagination.PageRequest{Page: 1, PageSize: 6}, campaigns.Filters{
		OwnerID: &owner,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(result.Data) != 0 {
		t.Errorf("Data length = %d, want 0", len(result.Data))
	}
	if result.HasMore {
		t.Error("empty page should not report more")
	}
	if !strings.Contains(conn.queries[0].query, "c.user_id = $1") {
		t.Errorf("missing owner condition: %q", conn.queries[0].query)
	}
}

func TestFiltersFromQuery(t *testing.T) {
	owner := uuid.New()

	values := url.Values{}
	values.Set("owner_id", owner.String())
	values.Set("scope", "State")
	values.Set("political_party", "Independent")

	f := campaigns.FiltersFromQuery(values)

	if f.OwnerID == nil || *f.OwnerID != owner {
		t.Errorf("OwnerID = %v, want %v", f.OwnerID, owner)
	}
	if f.Scope == nil || *f.Scope != "State" {
		t.Errorf("Scope = %v, want State", f.Scope)
	}
	if f.PoliticalParty == nil || *f.PoliticalParty != "Independent" {
		t.Errorf("PoliticalParty = %v", f.PoliticalParty)
	}
}

func TestFiltersFromQueryInvalidOwnerIgnored(t *testing.T) {
	values := url.Values{}
	values.Set("owner_id", "not-a-uuid")

	f := campaigns.FiltersFromQuery(values)
	if f.OwnerID != nil {
		t.Errorf("OwnerID = %v, want nil", f.OwnerID)
	}
}
