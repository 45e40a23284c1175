package businessflow

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/app/services"
	"github.com/voxlane/console/models"
	"github.com/voxlane/console/platform"
	"github.com/voxlane/console/utils"
)

// WizardFlow drives the six-step campaign builder. Drafts live server side;
// the client only ever sees the current draft state plus what it may do next.
type WizardFlow interface {
	StartWizard(ctx context.Context, req *dto.StartWizardRequest, metadata *ClientMetadata) (*dto.WizardDraftResponse, error)
	GetDraft(ctx context.Context, draftID string) (*dto.WizardDraftResponse, error)
	UpdateStep(ctx context.Context, draftID string, req *dto.UpdateStepRequest) (*dto.WizardDraftResponse, error)
	Advance(ctx context.Context, draftID string) (*dto.WizardDraftResponse, error)
	Back(ctx context.Context, draftID string) (*dto.WizardDraftResponse, error)
	Submit(ctx context.Context, draftID string, metadata *ClientMetadata) (*dto.SubmitWizardResponse, error)
	DiscardDraft(ctx context.Context, draftID string) error
	ListVoices(ctx context.Context, req *dto.ListVoicesRequest) ([]models.Voice, error)
}

// WizardFlowImpl implements WizardFlow.
type WizardFlowImpl struct {
	campaigns platform.CampaignRepository
	orgs      platform.OrganizationRepository
	voices    platform.VoiceRepository
	drafts    services.DraftStore
}

// NewWizardFlow creates a new wizard flow.
func NewWizardFlow(campaigns platform.CampaignRepository, orgs platform.OrganizationRepository, voices platform.VoiceRepository, drafts services.DraftStore) WizardFlow {
	return &WizardFlowImpl{
		campaigns: campaigns,
		orgs:      orgs,
		voices:    voices,
		drafts:    drafts,
	}
}

// StartWizard opens a draft. Create mode seeds platform defaults; edit mode
// hydrates from the existing campaign, and only counts as hydrated once both
// the campaign and the organization list have loaded.
func (s *WizardFlowImpl) StartWizard(ctx context.Context, req *dto.StartWizardRequest, metadata *ClientMetadata) (*dto.WizardDraftResponse, error) {
	sessionID, ok := utils.SessionIDFromContext(ctx)
	if !ok {
		return nil, NewBusinessError("SESSION_NOT_FOUND", "no active session", ErrSessionNotFound)
	}

	now := utils.UTCNow().UnixMilli()
	draft := &models.WizardDraft{
		ID:        uuid.NewString(),
		Mode:      models.WizardMode(req.Mode),
		Step:      models.StepBasics,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch draft.Mode {
	case models.WizardModeCreate:
		draft.Campaign = defaultCampaign()
	case models.WizardModeEdit:
		if req.CampaignID == "" {
			return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "campaign_id is required for edit mode", ErrCampaignNotFound)
		}
		campaign, err := s.campaigns.ByID(ctx, req.CampaignID)
		if err != nil {
			return nil, mapPlatformError(err, ErrCampaignNotFound)
		}
		draft.CampaignLoaded = true

		orgs, err := s.orgs.List(ctx)
		if err != nil {
			return nil, mapPlatformError(err, nil)
		}
		draft.OrganizationsLoaded = true

		if models.FindOrganization(orgs, campaign.OrgID) == nil {
			return nil, NewBusinessError("ORGANIZATION_NOT_FOUND", "campaign references an unknown organization", ErrOrganizationNotFound)
		}
		hydrateDraft(draft, campaign)
	}

	if err := s.drafts.Save(ctx, sessionID, draft); err != nil {
		return nil, fmt.Errorf("failed to persist draft: %w", err)
	}
	return s.draftResponse(draft), nil
}

func (s *WizardFlowImpl) GetDraft(ctx context.Context, draftID string) (*dto.WizardDraftResponse, error) {
	draft, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return s.draftResponse(draft), nil
}

// UpdateStep applies a partial edit to the draft. Edits touch only the fields
// of the step that sent them; everything else keeps its current value.
func (s *WizardFlowImpl) UpdateStep(ctx context.Context, draftID string, req *dto.UpdateStepRequest) (*dto.WizardDraftResponse, error) {
	sessionID, _ := utils.SessionIDFromContext(ctx)
	draft, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !draft.Hydrated() {
		return nil, NewBusinessError("DRAFT_NOT_HYDRATED", "draft is still loading", ErrDraftNotHydrated)
	}
	if req.Step < models.StepBasics || req.Step > models.WizardStepLast {
		return nil, NewBusinessError("STEP_OUT_OF_RANGE", "wizard step out of range", ErrStepOutOfRange)
	}

	if err := applyStepEdit(draft, req); err != nil {
		return nil, err
	}
	draft.UpdatedAt = utils.UTCNow().UnixMilli()

	if err := s.drafts.Save(ctx, sessionID, draft); err != nil {
		return nil, fmt.Errorf("failed to persist draft: %w", err)
	}
	return s.draftResponse(draft), nil
}

// Advance moves forward one step. In create mode the current step must be
// complete first; in edit mode every step is already backed by a persisted
// campaign, so navigation is free.
func (s *WizardFlowImpl) Advance(ctx context.Context, draftID string) (*dto.WizardDraftResponse, error) {
	sessionID, _ := utils.SessionIDFromContext(ctx)
	draft, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Step >= models.WizardStepLast {
		return nil, NewBusinessError("STEP_OUT_OF_RANGE", "already at the last step", ErrStepOutOfRange)
	}
	if !canAdvance(draft) {
		return nil, NewBusinessError("STEP_INCOMPLETE", stepIncompleteMessage(draft.Step), ErrStepIncomplete)
	}

	draft.Step++
	draft.UpdatedAt = utils.UTCNow().UnixMilli()
	if err := s.drafts.Save(ctx, sessionID, draft); err != nil {
		return nil, fmt.Errorf("failed to persist draft: %w", err)
	}
	return s.draftResponse(draft), nil
}

// Back moves back one step and never blocks.
func (s *WizardFlowImpl) Back(ctx context.Context, draftID string) (*dto.WizardDraftResponse, error) {
	sessionID, _ := utils.SessionIDFromContext(ctx)
	draft, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Step > models.StepBasics {
		draft.Step--
		draft.UpdatedAt = utils.UTCNow().UnixMilli()
		if err := s.drafts.Save(ctx, sessionID, draft); err != nil {
			return nil, fmt.Errorf("failed to persist draft: %w", err)
		}
	}
	return s.draftResponse(draft), nil
}

// Submit flattens the draft into a campaign object and sends it upstream in
// one request: POST for create mode, full-object PUT for edit mode. The draft
// is deleted only after the platform accepts.
func (s *WizardFlowImpl) Submit(ctx context.Context, draftID string, metadata *ClientMetadata) (*dto.SubmitWizardResponse, error) {
	sessionID, _ := utils.SessionIDFromContext(ctx)
	draft, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !draft.Hydrated() {
		return nil, NewBusinessError("DRAFT_NOT_HYDRATED", "draft is still loading", ErrDraftNotHydrated)
	}
	if missing := missingFields(draft); len(missing) > 0 {
		return nil, NewBusinessErrorf("STEP_INCOMPLETE", "required fields are missing: %s", ErrStepIncomplete, strings.Join(missing, ", "))
	}

	campaign := draft.Campaign
	campaign.LLM.PromptJSON.PromptVariables = models.FlattenKV(draft.PromptVariables)
	campaign.PostCallActions.Categories.Fields = models.FlattenKV(draft.CategoryFields)
	campaign.PostCallActions.DataExtracted.Fields = models.FlattenKV(draft.ExtractionFields)
	campaign.EnsureCampaignID()

	var persisted *models.Campaign
	switch draft.Mode {
	case models.WizardModeEdit:
		persisted, err = s.campaigns.Update(ctx, &campaign)
	default:
		persisted, err = s.campaigns.Create(ctx, &campaign)
	}
	if err != nil {
		return nil, mapPlatformError(err, ErrCampaignNotFound)
	}

	if err := s.drafts.Delete(ctx, sessionID, draftID); err != nil {
		// The campaign is already persisted; a stale draft just expires.
		return &dto.SubmitWizardResponse{Campaign: persisted}, nil
	}
	return &dto.SubmitWizardResponse{Campaign: persisted}, nil
}

func (s *WizardFlowImpl) DiscardDraft(ctx context.Context, draftID string) error {
	sessionID, ok := utils.SessionIDFromContext(ctx)
	if !ok {
		return NewBusinessError("SESSION_NOT_FOUND", "no active session", ErrSessionNotFound)
	}
	return s.drafts.Delete(ctx, sessionID, draftID)
}

// ListVoices fetches the vendor voice catalog for the voice step.
func (s *WizardFlowImpl) ListVoices(ctx context.Context, req *dto.ListVoicesRequest) ([]models.Voice, error) {
	voices, err := s.voices.List(ctx, platform.VoiceFilter{
		Vendor:   req.Vendor,
		Language: req.Language,
		Gender:   req.Gender,
		Search:   req.Search,
	})
	if err != nil {
		return nil, mapPlatformError(err, nil)
	}
	return voices, nil
}

func (s *WizardFlowImpl) loadDraft(ctx context.Context, draftID string) (*models.WizardDraft, error) {
	sessionID, ok := utils.SessionIDFromContext(ctx)
	if !ok {
		return nil, NewBusinessError("SESSION_NOT_FOUND", "no active session", ErrSessionNotFound)
	}
	draft, err := s.drafts.Get(ctx, sessionID, draftID)
	if errors.Is(err, services.ErrDraftMissing) {
		return nil, NewBusinessError("DRAFT_NOT_FOUND", "wizard draft not found", ErrDraftNotFound)
	}
	if err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *WizardFlowImpl) draftResponse(draft *models.WizardDraft) *dto.WizardDraftResponse {
	canSubmit := draft.Hydrated() && draft.Step == models.StepReview
	if canSubmit {
		for step := models.StepBasics; step < models.StepReview; step++ {
			if !stepComplete(draft, step) {
				canSubmit = false
				break
			}
		}
	}
	return &dto.WizardDraftResponse{
		Draft:      draft,
		CanAdvance: draft.Step < models.WizardStepLast && canAdvance(draft),
		CanSubmit:  canSubmit,
	}
}

// defaultCampaign seeds the values the platform expects for a brand-new
// campaign.
func defaultCampaign() models.Campaign {
	return models.Campaign{
		Direction: models.CampaignDirectionOutbound,
		State:     models.CampaignStateTrial,
		IsActive:  true,
		LLM: models.LLMConfig{
			Temperature:     0.7,
			MaxCallDuration: 600,
		},
		SpeechSetting: models.SpeechSetting{
			Interruption:       true,
			AmbientSoundVolume: 20,
			IdleReminderSec:    utils.IdleReminderSeconds[1],
			IdleCutoffSec:      utils.IdleCutoffSeconds[1],
		},
	}
}

// hydrateDraft explodes a persisted campaign into editable draft state. The
// flattened KV maps become ordered lists again, sorted by key so the rows
// render deterministically.
func hydrateDraft(draft *models.WizardDraft, campaign *models.Campaign) {
	draft.Campaign = *campaign
	draft.PromptVariables = kvFromMap(campaign.LLM.PromptJSON.PromptVariables)
	draft.CategoryFields = kvFromMap(campaign.PostCallActions.Categories.Fields)
	draft.ExtractionFields = kvFromMap(campaign.PostCallActions.DataExtracted.Fields)
}

func kvFromMap(m map[string]string) []models.KVEntry {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]models.KVEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, models.KVEntry{Key: k, Value: m[k]})
	}
	return entries
}

// applyStepEdit copies the provided fields onto the draft. Pointer fields
// distinguish "not sent" from "set to zero".
func applyStepEdit(draft *models.WizardDraft, req *dto.UpdateStepRequest) error {
	c := &draft.Campaign
	switch req.Step {
	case models.StepBasics:
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Direction != nil {
			if !models.IsValidDirection(models.CampaignDirection(*req.Direction)) {
				return NewBusinessError("INVALID_DIRECTION", "campaign direction must be INBOUND or OUTBOUND", ErrInvalidDirection)
			}
			c.Direction = models.CampaignDirection(*req.Direction)
		}
		if req.OrgID != nil {
			c.OrgID = *req.OrgID
		}
		if req.TelephonicProvider != nil {
			c.TelephonicProvider = *req.TelephonicProvider
		}
		if req.CallbackEndpoint != nil {
			c.CallbackEndpoint = *req.CallbackEndpoint
		}
	case models.StepPrompt:
		if req.SystemPrompt != nil {
			c.LLM.PromptJSON.Context = *req.SystemPrompt
		}
		if req.PromptVariables != nil {
			draft.PromptVariables = req.PromptVariables
		}
		if req.KnowledgeBaseURL != nil {
			c.KnowledgeBase.URL = *req.KnowledgeBaseURL
		}
		if req.LLMProvider != nil {
			c.LLM.Provider = *req.LLMProvider
		}
		if req.LLMModel != nil {
			c.LLM.Model = *req.LLMModel
		}
		if req.Temperature != nil {
			c.LLM.Temperature = *req.Temperature
		}
		if req.MaxCallDuration != nil {
			c.LLM.MaxCallDuration = *req.MaxCallDuration
		}
	case models.StepVoice:
		if req.TTSVendor != nil {
			c.TTS.Vendor = *req.TTSVendor
		}
		if req.TTSLanguage != nil {
			c.TTS.Language = *req.TTSLanguage
		}
		if req.TTSGender != nil {
			c.TTS.Gender = *req.TTSGender
		}
		if req.VoiceID != nil {
			c.TTS.VoiceID = *req.VoiceID
		}
		if req.STTVendor != nil {
			c.STT.Vendor = *req.STTVendor
		}
	case models.StepSpeech:
		if req.Interruption != nil {
			c.SpeechSetting.Interruption = *req.Interruption
		}
		if req.AmbientSound != nil {
			c.SpeechSetting.AmbientSound = *req.AmbientSound
		}
		if req.AmbientSoundType != nil {
			c.SpeechSetting.AmbientSoundType = *req.AmbientSoundType
		}
		if req.AmbientSoundVolume != nil {
			c.SpeechSetting.AmbientSoundVolume = *req.AmbientSoundVolume
		}
		if req.IdleReminderSec != nil {
			if !containsInt(utils.IdleReminderSeconds, *req.IdleReminderSec) {
				return NewBusinessErrorf("INVALID_IDLE_REMINDER", "idle reminder interval must be one of %v", nil, utils.IdleReminderSeconds)
			}
			c.SpeechSetting.IdleReminderSec = *req.IdleReminderSec
		}
		if req.IdleCutoffSec != nil {
			if !containsInt(utils.IdleCutoffSeconds, *req.IdleCutoffSec) {
				return NewBusinessErrorf("INVALID_IDLE_CUTOFF", "idle duration cutoff must be one of %v", nil, utils.IdleCutoffSeconds)
			}
			c.SpeechSetting.IdleCutoffSec = *req.IdleCutoffSec
		}
	case models.StepPostCall:
		if req.CategoryPrompt != nil {
			c.PostCallActions.Categories.SystemPrompt = *req.CategoryPrompt
		}
		if req.CategoryFields != nil {
			draft.CategoryFields = req.CategoryFields
		}
		if req.ExtractionPrompt != nil {
			c.PostCallActions.DataExtracted.SystemPrompt = *req.ExtractionPrompt
		}
		if req.ExtractionFields != nil {
			draft.ExtractionFields = req.ExtractionFields
		}
	case models.StepReview:
		// Review has no editable fields.
	}
	return nil
}

// canAdvance gates forward navigation. Create mode requires the current step
// to be complete; edit mode navigates freely over an already-valid campaign.
func canAdvance(draft *models.WizardDraft) bool {
	if !draft.Hydrated() {
		return false
	}
	if draft.Mode == models.WizardModeEdit {
		return true
	}
	return stepComplete(draft, draft.Step)
}

func stepComplete(draft *models.WizardDraft, step int) bool {
	c := &draft.Campaign
	switch step {
	case models.StepBasics:
		return c.Name != "" && models.IsValidDirection(c.Direction) && c.OrgID != "" && c.TelephonicProvider != ""
	case models.StepPrompt:
		return c.LLM.PromptJSON.Context != ""
	case models.StepVoice:
		return c.TTS.VoiceID != ""
	case models.StepSpeech, models.StepPostCall, models.StepReview:
		return true
	}
	return false
}

// missingFields collects the names of every required top-level field the
// draft has not filled in yet, across all steps, so a failed submit reports
// the whole list at once.
func missingFields(draft *models.WizardDraft) []string {
	c := &draft.Campaign
	var missing []string
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if !models.IsValidDirection(c.Direction) {
		missing = append(missing, "direction")
	}
	if c.OrgID == "" {
		missing = append(missing, "org_id")
	}
	if c.TelephonicProvider == "" {
		missing = append(missing, "telephonic_provider")
	}
	if c.LLM.PromptJSON.Context == "" {
		missing = append(missing, "system_prompt")
	}
	if c.TTS.VoiceID == "" {
		missing = append(missing, "voice_id")
	}
	return missing
}

func stepIncompleteMessage(step int) string {
	switch step {
	case models.StepBasics:
		return "name, direction, organization, and telephony provider are required"
	case models.StepPrompt:
		return "a system prompt is required"
	case models.StepVoice:
		return "a voice must be selected"
	}
	return "current wizard step is incomplete"
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
