package businessflow

import (
	"context"
	"errors"

	"github.com/voxlane/console/models"
	"github.com/voxlane/console/platform"
)

// fakeCampaignRepo records writes and serves canned reads.
type fakeCampaignRepo struct {
	campaigns map[string]*models.Campaign

	created *models.Campaign
	updated *models.Campaign
	deleted []string

	uploadedFile string
	uploadedData []byte

	err error
}

func newFakeCampaignRepo(campaigns ...*models.Campaign) *fakeCampaignRepo {
	byID := make(map[string]*models.Campaign)
	for _, c := range campaigns {
		byID[c.CampaignID] = c
	}
	return &fakeCampaignRepo{campaigns: byID}
}

func (f *fakeCampaignRepo) List(context.Context) ([]models.Campaign, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Campaign, 0, len(f.campaigns))
	for _, c := range f.campaigns {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCampaignRepo) ByID(_ context.Context, campaignID string) (*models.Campaign, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.campaigns[campaignID]
	if !ok {
		return nil, platform.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCampaignRepo) Create(_ context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	if f.err != nil {
		return nil, f.err
	}
	clone := *campaign
	f.created = &clone
	return &clone, nil
}

func (f *fakeCampaignRepo) Update(_ context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	if f.err != nil {
		return nil, f.err
	}
	clone := *campaign
	f.updated = &clone
	return &clone, nil
}

func (f *fakeCampaignRepo) Delete(_ context.Context, campaignID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, campaignID)
	return nil
}

func (f *fakeCampaignRepo) UploadContacts(_ context.Context, _, fileName string, csvData []byte) error {
	if f.err != nil {
		return f.err
	}
	f.uploadedFile = fileName
	f.uploadedData = csvData
	return nil
}

// fakeCallRepo serves pre-built pages keyed by cursor and records mutations.
type fakeCallRepo struct {
	pages     map[string]*models.CallPage
	artifacts map[string]*models.CallArtifacts

	lastQuery platform.CallQuery
	ratings   map[string]int
	initiated []platform.OutboundCallRequest
	recording string

	listCalls int
	err       error
}

func newFakeCallRepo() *fakeCallRepo {
	return &fakeCallRepo{
		pages:     make(map[string]*models.CallPage),
		artifacts: make(map[string]*models.CallArtifacts),
		ratings:   make(map[string]int),
	}
}

func (f *fakeCallRepo) List(_ context.Context, q platform.CallQuery) (*models.CallPage, error) {
	f.listCalls++
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	page, ok := f.pages[q.Cursor]
	if !ok {
		return &models.CallPage{}, nil
	}
	return page, nil
}

func (f *fakeCallRepo) Artifacts(_ context.Context, callSid string) (*models.CallArtifacts, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.artifacts[callSid]
	if !ok {
		return &models.CallArtifacts{}, nil
	}
	return a, nil
}

func (f *fakeCallRepo) SubmitRating(_ context.Context, callSid string, rating int) error {
	if f.err != nil {
		return f.err
	}
	f.ratings[callSid] = rating
	return nil
}

func (f *fakeCallRepo) RecordingURL(context.Context, string, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.recording, nil
}

func (f *fakeCallRepo) Initiate(_ context.Context, req platform.OutboundCallRequest) error {
	if f.err != nil {
		return f.err
	}
	f.initiated = append(f.initiated, req)
	return nil
}

// fakeOrgRepo serves a fixed organization list.
type fakeOrgRepo struct {
	orgs []models.Organization
	err  error
}

func (f *fakeOrgRepo) List(context.Context) ([]models.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.orgs, nil
}

func (f *fakeOrgRepo) ByID(_ context.Context, orgID string) (*models.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	if org := models.FindOrganization(f.orgs, orgID); org != nil {
		return org, nil
	}
	return nil, platform.ErrNotFound
}

func (f *fakeOrgRepo) Create(_ context.Context, org *models.Organization) (*models.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.orgs = append(f.orgs, *org)
	return org, nil
}

func (f *fakeOrgRepo) Update(_ context.Context, org *models.Organization) (*models.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	return org, nil
}

func (f *fakeOrgRepo) Delete(context.Context, string) error {
	return f.err
}

// fakeRoleRepo serves a fixed role list and records writes.
type fakeRoleRepo struct {
	roles map[string]*models.Role

	created *models.Role
	updated *models.Role
	deleted []string

	err error
}

func newFakeRoleRepo(roles ...*models.Role) *fakeRoleRepo {
	byID := make(map[string]*models.Role)
	for _, r := range roles {
		byID[r.ID] = r
	}
	return &fakeRoleRepo{roles: byID}
}

func (f *fakeRoleRepo) List(context.Context) ([]models.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Role, 0, len(f.roles))
	for _, r := range f.roles {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRoleRepo) ByID(_ context.Context, roleID string) (*models.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.roles[roleID]
	if !ok {
		return nil, platform.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRoleRepo) Create(_ context.Context, role *models.Role) (*models.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	clone := *role
	f.created = &clone
	return &clone, nil
}

func (f *fakeRoleRepo) Update(_ context.Context, role *models.Role) (*models.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	clone := *role
	f.updated = &clone
	return &clone, nil
}

func (f *fakeRoleRepo) Delete(_ context.Context, roleID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, roleID)
	return nil
}

// fakeVoiceRepo records the last filter it was asked for.
type fakeVoiceRepo struct {
	voices     []models.Voice
	lastFilter platform.VoiceFilter
	err        error
}

func (f *fakeVoiceRepo) List(_ context.Context, filter platform.VoiceFilter) ([]models.Voice, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.voices, nil
}

// fakeAuthAPI simulates the platform session endpoints.
type fakeAuthAPI struct {
	result    *platform.LoginResult
	loginErr  error
	logoutErr error

	loginEmail string
	logoutHits int
}

func (f *fakeAuthAPI) Login(_ context.Context, email, _ string) (*platform.LoginResult, error) {
	f.loginEmail = email
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.result, nil
}

func (f *fakeAuthAPI) Logout(context.Context) error {
	f.logoutHits++
	return f.logoutErr
}

// errTransport is a generic upstream failure distinct from the sentinel errors.
var errTransport = errors.New("connection reset")
