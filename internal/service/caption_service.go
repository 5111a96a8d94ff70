package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"
	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/repository"
)

// GeneratedCaption is the synthesizer output. Hashtags is always non-nil; a
// response without a HASHTAGS: section yields an empty list.
type GeneratedCaption struct {
	Body     string   `json:"body"`
	Hashtags []string `json:"hashtags"`
}

type stageFraming struct {
	description string
	tone        string
}

// Fixed marketing framing per stage; the prompt always carries it.
var stageFramings = map[string]stageFraming{
	models.StageAcquired:     {"new arrival", "excitement"},
	models.StageInService:    {"getting road-ready in our service bay", "trust and care"},
	models.StageReadyForSale: {"now available on our lot", "urgency and pride"},
	models.StageSold:         {"another happy customer driving home", "celebration and gratitude"},
}

type CaptionService interface {
	Synthesize(ctx context.Context, vehicle *models.Vehicle, event *models.LifecycleEvent, profile *models.VoiceProfile, template *models.LifecycleTemplate, operatorNotes, dealershipName string) (*GeneratedCaption, error)
	GenerateDraft(ctx context.Context, dealershipID, eventID, templateID int64, operatorNotes string) (*models.Caption, error)
	DraftForEvent(ctx context.Context, dealershipID, eventID int64) (*models.Caption, []*models.CaptionPlatformPost, error)
	EditDraft(ctx context.Context, dealershipID, captionID int64, body string, hashtags []string) error
	FallbackCaption(vehicle *models.Vehicle, event *models.LifecycleEvent) *GeneratedCaption
}

type captionService struct {
	gen GenerationClient
	cr  repository.CaptionRepository
	er  repository.LifecycleEventRepository
	vr  repository.VehicleRepository
	vp  repository.VoiceProfileRepository
	tr  repository.TemplateRepository
	dr  repository.DealershipRepository
}

func NewCaptionService(
	gen GenerationClient,
	cr repository.CaptionRepository,
	er repository.LifecycleEventRepository,
	vr repository.VehicleRepository,
	vp repository.VoiceProfileRepository,
	tr repository.TemplateRepository,
	dr repository.DealershipRepository) CaptionService {
	return &captionService{
		gen: gen,
		cr:  cr,
		er:  er,
		vr:  vr,
		vp:  vp,
		tr:  tr,
		dr:  dr,
	}
}

// Synthesize builds the structured prompt and delegates the text production
// to the generation backend. Any transport or parse failure comes back as
// ErrGenerationFailed; callers substitute FallbackCaption instead of
// blocking the workflow.
func (s *captionService) Synthesize(ctx context.Context, vehicle *models.Vehicle, event *models.LifecycleEvent, profile *models.VoiceProfile, template *models.LifecycleTemplate, operatorNotes, dealershipName string) (*GeneratedCaption, error) {
	prompt := BuildPrompt(vehicle, event, profile, template, operatorNotes, dealershipName)

	raw, err := s.gen.Complete(ctx, prompt)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	caption, err := ParseGeneration(raw)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return caption, nil
}

// GenerateDraft loads everything the synthesizer needs, runs it, and persists
// the result as the event's draft. Generation failure degrades to the
// fallback caption; the draft is saved either way.
func (s *captionService) GenerateDraft(ctx context.Context, dealershipID, eventID, templateID int64, operatorNotes string) (*models.Caption, error) {
	event, err := s.er.GetByID(ctx, eventID)
	if err != nil || event == nil {
		return nil, fmt.Errorf("unable to get lifecycle event")
	}

	vehicle, err := s.vr.GetByID(ctx, event.VehicleID)
	if err != nil || vehicle == nil {
		return nil, fmt.Errorf("unable to get vehicle info")
	}

	if vehicle.DealershipID != dealershipID {
		err = errors.New("Vehicle doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	// Absent profile means neutral defaults, not an error.
	profile, _, err := s.vp.GetByDealershipID(ctx, dealershipID)
	if err != nil {
		return nil, fmt.Errorf("error getting voice profile")
	}

	var template *models.LifecycleTemplate
	if templateID != 0 {
		template, err = s.tr.GetByID(ctx, templateID)
		if err != nil {
			return nil, fmt.Errorf("error getting template")
		}
		if template != nil && template.DealershipID != dealershipID {
			template = nil
		}
	}

	// Display name feeds the prompt only; a failed read degrades to blank.
	dealershipName := ""
	if dealership, err := s.dr.GetByID(ctx, dealershipID); err == nil && dealership != nil {
		dealershipName = dealership.Name
	}

	generated, err := s.Synthesize(ctx, vehicle, event, profile, template, operatorNotes, dealershipName)
	if err != nil {
		if !errors.Is(err, ErrGenerationFailed) {
			return nil, err
		}
		generated = s.FallbackCaption(vehicle, event)
	}

	draft, err := s.cr.UpsertDraft(ctx, &models.Caption{
		DealershipID: dealershipID,
		VehicleID:    vehicle.ID,
		EventID:      eventID,
		Body:         generated.Body,
		Hashtags:     pq.StringArray(generated.Hashtags),
	})
	if err != nil {
		return nil, fmt.Errorf("error saving caption draft")
	}

	return draft, nil
}

func (s *captionService) DraftForEvent(ctx context.Context, dealershipID, eventID int64) (*models.Caption, []*models.CaptionPlatformPost, error) {
	caption, isExist, err := s.cr.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting caption")
	}
	if !isExist {
		return nil, nil, nil
	}

	if caption.DealershipID != dealershipID {
		err = errors.New("Caption doesn't exist")
		slog.Info(err.Error())
		return nil, nil, err
	}

	posts, err := s.cr.ListPlatformPosts(ctx, caption.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting posted history")
	}

	return caption, posts, nil
}

func (s *captionService) EditDraft(ctx context.Context, dealershipID, captionID int64, body string, hashtags []string) error {
	var err error

	if body == "" {
		err = errors.New("caption body cannot be empty")
		slog.Info(err.Error())
		return err
	}

	caption, err := s.cr.GetByID(ctx, captionID)
	if err != nil || caption == nil {
		return fmt.Errorf("unable to get caption")
	}

	if caption.DealershipID != dealershipID {
		err = errors.New("Caption doesn't exist")
		slog.Info(err.Error())
		return err
	}

	if hashtags == nil {
		hashtags = []string{}
	}

	if err := s.cr.UpdateDraft(ctx, captionID, body, hashtags); err != nil {
		return fmt.Errorf("error updating caption")
	}
	return nil
}

// FallbackCaption is the safe generic caption substituted when generation
// fails. It only uses fields that are always present.
func (s *captionService) FallbackCaption(vehicle *models.Vehicle, event *models.LifecycleEvent) *GeneratedCaption {
	framing := stageFramings[event.EventType]

	var b strings.Builder
	if vehicle.Year > 0 {
		fmt.Fprintf(&b, "%d ", vehicle.Year)
	}
	fmt.Fprintf(&b, "%s %s", vehicle.Make, vehicle.Model)

	body := strings.TrimSpace(b.String())
	if framing.description != "" {
		body = fmt.Sprintf("%s — %s. Stop by or message us for details!", body, framing.description)
	} else {
		body = fmt.Sprintf("%s. Stop by or message us for details!", body)
	}

	return &GeneratedCaption{
		Body:     body,
		Hashtags: []string{"cars", "dealership", strings.ToLower(strings.ReplaceAll(vehicle.Make, " ", ""))},
	}
}

// BuildPrompt assembles the structured generation prompt. Operator notes,
// when present, lead the prompt and are marked as the required dominant
// topic. Vehicle fields are included only when non-empty.
func BuildPrompt(vehicle *models.Vehicle, event *models.LifecycleEvent, profile *models.VoiceProfile, template *models.LifecycleTemplate, operatorNotes, dealershipName string) string {
	var b strings.Builder

	b.WriteString("Write a social media post for an auto dealership.\n")

	if operatorNotes != "" {
		fmt.Fprintf(&b, "\nMOST IMPORTANT — the post must be primarily about this: %s\n", operatorNotes)
	}

	if framing, ok := stageFramings[event.EventType]; ok {
		fmt.Fprintf(&b, "\nContext: %s. Tone: %s.\n", framing.description, framing.tone)
	}

	if dealershipName != "" {
		fmt.Fprintf(&b, "Dealership: %s\n", dealershipName)
	}

	b.WriteString("\nVehicle:\n")
	for _, line := range vehicleLines(vehicle) {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	if profile != nil {
		b.WriteString("\nVoice:\n")
		for _, line := range voiceLines(profile) {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}

	if template != nil && template.Body != "" {
		fmt.Fprintf(&b, "\nUse this template as a starting point:\n%s\n", template.Body)
	}

	b.WriteString("\nRespond in this exact format:\n")
	b.WriteString("CAPTION: <the caption>\n")
	b.WriteString("HASHTAGS: <comma-separated hashtags without #>\n")

	return b.String()
}

// vehicleLines renders only present, non-empty fields; absent values are
// omitted rather than rendered as placeholders.
func vehicleLines(v *models.Vehicle) []string {
	var lines []string

	if v.Year > 0 {
		lines = append(lines, fmt.Sprintf("Year: %d", v.Year))
	}
	if v.Make != "" {
		lines = append(lines, "Make: "+v.Make)
	}
	if v.Model != "" {
		lines = append(lines, "Model: "+v.Model)
	}
	if v.Color != "" {
		lines = append(lines, "Color: "+v.Color)
	}
	if v.Mileage > 0 {
		lines = append(lines, fmt.Sprintf("Mileage: %d miles", v.Mileage))
	}
	if v.Price > 0 {
		lines = append(lines, fmt.Sprintf("Price: $%.2f", float64(v.Price)/100))
	}
	if v.StockNumber != "" {
		lines = append(lines, "Stock number: "+v.StockNumber)
	}

	return lines
}

// voiceLines translates the numeric sliders into descriptive language for
// the generation backend.
func voiceLines(p *models.VoiceProfile) []string {
	var lines []string

	switch {
	case p.Formality >= 4:
		lines = append(lines, "Register: formal and professional")
	case p.Formality <= 2:
		lines = append(lines, "Register: casual and friendly")
	default:
		lines = append(lines, "Register: conversational")
	}

	switch {
	case p.Energy >= 4:
		lines = append(lines, "Energy: high-energy and enthusiastic")
	case p.Energy <= 2:
		lines = append(lines, "Energy: calm and measured")
	}

	switch {
	case p.EmojiUsage >= 4:
		lines = append(lines, "Emojis: use them generously")
	case p.EmojiUsage <= 2:
		lines = append(lines, "Emojis: avoid them")
	default:
		lines = append(lines, "Emojis: use sparingly")
	}

	switch p.TechnicalDetail {
	case models.TechnicalDetailSpecHeavy:
		lines = append(lines, "Detail: lean into specs and numbers")
	case models.TechnicalDetailPlain:
		lines = append(lines, "Detail: plain language, no jargon")
	}

	switch p.CommunityConnection {
	case models.CommunityLocal:
		lines = append(lines, "Audience: speak to the local community")
	case models.CommunityRegional:
		lines = append(lines, "Audience: speak to the wider region")
	}

	if len(p.PrimaryEmotions) > 0 {
		lines = append(lines, "Evoke: "+strings.Join(p.PrimaryEmotions, ", "))
	}
	if len(p.ValueProps) > 0 {
		lines = append(lines, "Emphasize: "+strings.Join(p.ValueProps, ", "))
	}
	if len(p.ToneUse) > 0 {
		lines = append(lines, "Words to favor: "+strings.Join(p.ToneUse, ", "))
	}
	if len(p.ToneAvoid) > 0 {
		lines = append(lines, "Words to avoid: "+strings.Join(p.ToneAvoid, ", "))
	}

	return lines
}

const (
	captionMarker  = "CAPTION:"
	hashtagsMarker = "HASHTAGS:"
)

// ParseGeneration extracts the caption body and hashtag list from the
// backend's free-text response. A missing CAPTION: marker is an error; a
// missing HASHTAGS: section yields an empty list.
func ParseGeneration(raw string) (*GeneratedCaption, error) {
	captionIdx := strings.Index(raw, captionMarker)
	if captionIdx < 0 {
		return nil, errors.New("response is missing the CAPTION: marker")
	}

	rest := raw[captionIdx+len(captionMarker):]

	body := rest
	hashtags := []string{}

	if hashtagsIdx := strings.Index(rest, hashtagsMarker); hashtagsIdx >= 0 {
		body = rest[:hashtagsIdx]
		for _, tag := range strings.Split(rest[hashtagsIdx+len(hashtagsMarker):], ",") {
			tag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
			if tag != "" {
				hashtags = append(hashtags, tag)
			}
		}
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.New("response caption is empty")
	}

	return &GeneratedCaption{
		Body:     body,
		Hashtags: hashtags,
	}, nil
}
