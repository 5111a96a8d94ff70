package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/transfer"
)

// In-memory stand-ins for the repository layer.

type fakeVehicleRepo struct {
	mu       sync.Mutex
	nextID   int64
	vehicles map[int64]*models.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{nextID: 1, vehicles: make(map[int64]*models.Vehicle)}
}

func (r *fakeVehicleRepo) Create(ctx context.Context, v *models.Vehicle) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = r.nextID
	r.nextID++
	r.vehicles[v.ID] = v
	return v.ID, nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVehicleRepo) ListByDealershipID(ctx context.Context, dealershipID int64) ([]*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Vehicle
	for _, v := range r.vehicles {
		if v.DealershipID == dealershipID && !v.Archived {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) CheckByDealershipID(ctx context.Context, vehicleID, dealershipID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[vehicleID]
	return ok && v.DealershipID == dealershipID, nil
}

func (r *fakeVehicleRepo) UpdateStatus(ctx context.Context, status string, vehicleID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[vehicleID]
	if !ok {
		return errors.New("no such vehicle")
	}
	v.Status = status
	return nil
}

func (r *fakeVehicleRepo) Archive(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return errors.New("no such vehicle")
	}
	v.Archived = true
	return nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*models.LifecycleEvent
	fail   bool
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{nextID: 1, events: make(map[int64]*models.LifecycleEvent)}
}

func (r *fakeEventRepo) Create(ctx context.Context, e *models.LifecycleEvent) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return 0, errors.New("event insert failed")
	}
	e.ID = r.nextID
	r.nextID++
	e.CreatedAt = time.Now()
	r.events[e.ID] = e
	return e.ID, nil
}

func (r *fakeEventRepo) ListByVehicleID(ctx context.Context, vehicleID int64) ([]*models.LifecycleEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.LifecycleEvent
	for id := int64(1); id < r.nextID; id++ {
		if e, ok := r.events[id]; ok && e.VehicleID == vehicleID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id int64) (*models.LifecycleEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

type fakeCaptionRepo struct {
	mu       sync.Mutex
	nextID   int64
	captions map[int64]*models.Caption
	posts    []*models.CaptionPlatformPost
	failMark bool
}

func newFakeCaptionRepo() *fakeCaptionRepo {
	return &fakeCaptionRepo{nextID: 1, captions: make(map[int64]*models.Caption)}
}

func (r *fakeCaptionRepo) UpsertDraft(ctx context.Context, c *models.Caption) (*models.Caption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.captions {
		if existing.EventID == c.EventID {
			existing.Body = c.Body
			existing.Hashtags = c.Hashtags
			copied := *existing
			return &copied, nil
		}
	}
	c.ID = r.nextID
	r.nextID++
	r.captions[c.ID] = c
	copied := *c
	return &copied, nil
}

func (r *fakeCaptionRepo) GetByID(ctx context.Context, id int64) (*models.Caption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.captions[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCaptionRepo) GetByEventID(ctx context.Context, eventID int64) (*models.Caption, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.captions {
		if c.EventID == eventID {
			copied := *c
			return &copied, true, nil
		}
	}
	return nil, false, nil
}

func (r *fakeCaptionRepo) UpdateDraft(ctx context.Context, id int64, body string, hashtags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.captions[id]
	if !ok {
		return errors.New("no such caption")
	}
	c.Body = body
	c.Hashtags = hashtags
	return nil
}

func (r *fakeCaptionRepo) MarkPosted(ctx context.Context, captionID int64, platform, externalPostID string, postedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failMark {
		return errors.New("mark posted failed")
	}
	r.posts = append(r.posts, &models.CaptionPlatformPost{
		CaptionID:      captionID,
		Platform:       platform,
		ExternalPostID: externalPostID,
		PostedAt:       postedAt,
	})
	return nil
}

func (r *fakeCaptionRepo) ListPlatformPosts(ctx context.Context, captionID int64) ([]*models.CaptionPlatformPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.CaptionPlatformPost
	for _, p := range r.posts {
		if p.CaptionID == captionID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeVoiceProfileRepo struct {
	mu       sync.Mutex
	profiles map[int64]*models.VoiceProfile
}

func newFakeVoiceProfileRepo() *fakeVoiceProfileRepo {
	return &fakeVoiceProfileRepo{profiles: make(map[int64]*models.VoiceProfile)}
}

func (r *fakeVoiceProfileRepo) GetByDealershipID(ctx context.Context, dealershipID int64) (*models.VoiceProfile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[dealershipID]
	if !ok {
		return nil, false, nil
	}
	copied := *p
	return &copied, true, nil
}

func (r *fakeVoiceProfileRepo) Upsert(ctx context.Context, p *models.VoiceProfile) (*models.VoiceProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[p.DealershipID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = int64(len(r.profiles) + 1)
	}
	r.profiles[p.DealershipID] = p
	copied := *p
	return &copied, nil
}

type fakeTemplateRepo struct {
	mu        sync.Mutex
	nextID    int64
	templates map[int64]*models.LifecycleTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{nextID: 1, templates: make(map[int64]*models.LifecycleTemplate)}
}

func (r *fakeTemplateRepo) Create(ctx context.Context, t *models.LifecycleTemplate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	r.templates[t.ID] = t
	return t.ID, nil
}

func (r *fakeTemplateRepo) GetByID(ctx context.Context, id int64) (*models.LifecycleTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTemplateRepo) ListByDealershipID(ctx context.Context, dealershipID int64, stage string) ([]*models.LifecycleTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.LifecycleTemplate
	for _, t := range r.templates {
		if t.DealershipID != dealershipID {
			continue
		}
		if stage != "" && t.Stage != stage {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeTemplateRepo) CheckByDealershipID(ctx context.Context, templateID, dealershipID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[templateID]
	return ok && t.DealershipID == dealershipID, nil
}

func (r *fakeTemplateRepo) Update(ctx context.Context, t *models.LifecycleTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.templates[t.ID]
	if !ok {
		return errors.New("no such template")
	}
	existing.Stage = t.Stage
	existing.Name = t.Name
	existing.Body = t.Body
	return nil
}

func (r *fakeTemplateRepo) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.templates, id)
	return nil
}

type fakeDealershipRepo struct {
	mu          sync.Mutex
	nextID      int64
	dealerships map[int64]*models.Dealership
}

func newFakeDealershipRepo() *fakeDealershipRepo {
	return &fakeDealershipRepo{nextID: 1, dealerships: make(map[int64]*models.Dealership)}
}

func (r *fakeDealershipRepo) Create(ctx context.Context, d *models.Dealership) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = r.nextID
	r.nextID++
	r.dealerships[d.ID] = d
	return d.ID, nil
}

func (r *fakeDealershipRepo) GetByID(ctx context.Context, id int64) (*models.Dealership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dealerships[id]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

type fakeConnectionRepo struct {
	mu          sync.Mutex
	nextID      int64
	connections map[string]*models.PlatformConnection
}

func newFakeConnectionRepo() *fakeConnectionRepo {
	return &fakeConnectionRepo{nextID: 1, connections: make(map[string]*models.PlatformConnection)}
}

func connKey(dealershipID int64, platform string) string {
	return fmt.Sprintf("%d/%s", dealershipID, platform)
}

func (r *fakeConnectionRepo) Upsert(ctx context.Context, c *models.PlatformConnection) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := connKey(c.DealershipID, c.Platform)
	if existing, ok := r.connections[key]; ok {
		c.ID = existing.ID
	} else {
		c.ID = r.nextID
		r.nextID++
	}
	r.connections[key] = c
	return c.ID, nil
}

func (r *fakeConnectionRepo) GetByPlatform(ctx context.Context, dealershipID int64, platform string) (*models.PlatformConnection, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.connections[connKey(dealershipID, platform)]
	if !ok {
		return nil, false, nil
	}
	copied := *c
	return &copied, true, nil
}

func (r *fakeConnectionRepo) ListByDealershipID(ctx context.Context, dealershipID int64) ([]*models.PlatformConnection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PlatformConnection
	for _, c := range r.connections {
		if c.DealershipID == dealershipID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeConnectionRepo) SetConnected(ctx context.Context, dealershipID int64, platform string, connected bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.connections[connKey(dealershipID, platform)]
	if !ok {
		return errors.New("no such connection")
	}
	c.Connected = connected
	return nil
}

func (r *fakeConnectionRepo) SetSelectedTarget(ctx context.Context, dealershipID int64, platform, targetID, targetName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.connections[connKey(dealershipID, platform)]
	if !ok {
		return errors.New("no such connection")
	}
	c.SelectedTargetID = targetID
	c.SelectedTargetName = targetName
	return nil
}

func (r *fakeConnectionRepo) Remove(ctx context.Context, dealershipID int64, platform string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.connections, connKey(dealershipID, platform))
	return nil
}

type fakePublishedPostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  []*models.PublishedPost
	fail   bool
}

func newFakePublishedPostRepo() *fakePublishedPostRepo {
	return &fakePublishedPostRepo{nextID: 1}
}

func (r *fakePublishedPostRepo) Create(ctx context.Context, p *models.PublishedPost) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return 0, errors.New("ledger insert failed")
	}
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now()
	r.posts = append(r.posts, p)
	return p.ID, nil
}

func (r *fakePublishedPostRepo) ListByVehicleID(ctx context.Context, vehicleID int64) ([]*models.PublishedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PublishedPost
	for _, p := range r.posts {
		if p.VehicleID == vehicleID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePublishedPostRepo) ListByDealershipID(ctx context.Context, dealershipID int64) ([]*models.PublishedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PublishedPost
	for _, p := range r.posts {
		if p.DealershipID == dealershipID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePublishedPostRepo) ListSince(ctx context.Context, since time.Time) ([]*models.PublishedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PublishedPost
	for _, p := range r.posts {
		if p.CreatedAt.After(since) {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePublishedPostRepo) UpdateEngagement(ctx context.Context, id int64, likes, comments, shares int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == id {
			p.Likes = likes
			p.Comments = comments
			p.Shares = shares
			return nil
		}
	}
	return errors.New("no such post")
}

// fakeGenerationClient returns a canned response or error.
type fakeGenerationClient struct {
	response string
	err      error
}

func (g *fakeGenerationClient) Complete(ctx context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

// fakeAdapter is a programmable platform.
type fakeAdapter struct {
	mu         sync.Mutex
	platform   string
	limit      int
	postErr    error
	postID     string
	posted     []string
	targetsErr error
}

func (a *fakeAdapter) Platform() string    { return a.platform }
func (a *fakeAdapter) CharacterLimit() int { return a.limit }
func (a *fakeAdapter) AuthURL(state string) string {
	return "https://example.com/auth?state=" + state
}

func (a *fakeAdapter) ExchangeCode(ctx context.Context, code string) (*transfer.PlatformToken, *transfer.PlatformAccount, error) {
	return &transfer.PlatformToken{AccessToken: "token-" + code, ExpiresAt: time.Now().Add(time.Hour).Unix()},
		&transfer.PlatformAccount{ID: "acc", Name: "Test Account"}, nil
}

func (a *fakeAdapter) ListTargets(ctx context.Context, accessToken string) ([]models.Target, error) {
	if a.targetsErr != nil {
		return nil, a.targetsErr
	}
	return []models.Target{{ID: "t1", Name: "Main Page"}}, nil
}

func (a *fakeAdapter) Post(ctx context.Context, accessToken string, target models.Target, body string, imageURLs []string) (string, error) {
	if a.postErr != nil {
		return "", a.postErr
	}
	a.mu.Lock()
	a.posted = append(a.posted, body)
	a.mu.Unlock()
	return a.postID, nil
}

func (a *fakeAdapter) PostURL(externalPostID string) string {
	return "https://example.com/posts/" + externalPostID
}

func (a *fakeAdapter) ValidateConnection(ctx context.Context, accessToken string) error {
	return nil
}

func (a *fakeAdapter) Engagement(ctx context.Context, accessToken, externalPostID string) (*transfer.EngagementSnapshot, error) {
	return &transfer.EngagementSnapshot{Likes: 3, Comments: 1, Shares: 2}, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (n *fakeNotifier) StageChanged(ctx context.Context, dealershipID, vehicleID, eventID int64, stage string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, stage)
	return n.err
}

// fakeMedia passes keys through untouched.
type fakeMedia struct{}

func (fakeMedia) ResolveURL(ctx context.Context, key string) (string, error) {
	return key, nil
}
