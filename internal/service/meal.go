package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/imaging"
	"github.com/timmy/calsnap/internal/logger"
	"github.com/timmy/calsnap/internal/storage"
)

// Bounds for the history endpoint.
const (
	DefaultHistoryDays = 7
	MaxHistoryDays     = 90
)

// MealService runs the photo -> draft -> confirmed meal flow and the daily progress views.
type MealService struct {
	gateway   Gateway
	meals     MealStore
	sessions  SessionStore
	summaries SummaryStore
	storage   storage.ObjectStorage // nil when photos are not kept
	logger    *logger.Logger
	loc       *time.Location
	now       func() time.Time

	// analyzing is held for the duration of one model call.
	analyzing sync.Mutex

	mu    sync.Mutex
	draft *domain.Draft
}

// MealServiceConfig holds configuration for the meal service.
type MealServiceConfig struct {
	Location *time.Location // day boundaries; time.Local when nil
}

// ConfirmRequest picks the slot for the pending draft. Non-nil fields replace
// the parsed values.
type ConfirmRequest struct {
	MealSlot     string  `json:"mealSlot"`
	FoodName     *string `json:"foodName,omitempty"`
	Calories     *int    `json:"calories,omitempty"`
	CarbsGrams   *int    `json:"carbsGrams,omitempty"`
	ProteinGrams *int    `json:"proteinGrams,omitempty"`
	FatGrams     *int    `json:"fatGrams,omitempty"`
}

// NewMealService creates a new meal service.
// Parameters:
//   - gateway: vision model gateway.
//   - meals: durable meal store.
//   - sessions: session store for the calorie goal.
//   - summaries: daily snapshot store.
//   - objectStorage: photo storage; nil keeps no photos.
//   - log: fallback logger.
//   - cfg: timezone settings.
// Returns:
//   - *MealService: ready-to-use service.
func NewMealService(
	gateway Gateway,
	meals MealStore,
	sessions SessionStore,
	summaries SummaryStore,
	objectStorage storage.ObjectStorage,
	log *logger.Logger,
	cfg *MealServiceConfig,
) *MealService {
	loc := time.Local
	if cfg != nil && cfg.Location != nil {
		loc = cfg.Location
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &MealService{
		gateway:   gateway,
		meals:     meals,
		sessions:  sessions,
		summaries: summaries,
		storage:   objectStorage,
		logger:    log,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *MealService) log(ctx context.Context) *logger.Logger {
	// A request logger wins over the one the service was built with.
	if l := logger.FromContext(ctx); l != logger.GetDefault() {
		return l
	}
	return s.logger
}

// Describe sends a photo to the model and returns the raw reply without
// creating a draft. It shares the busy guard with Analyze.
func (s *MealService) Describe(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", domain.ErrEmptyInput
	}
	if !s.analyzing.TryLock() {
		return "", domain.ErrBusy
	}
	defer s.analyzing.Unlock()

	start := time.Now()
	text, err := s.gateway.Analyze(ctx, image)
	if err != nil {
		logger.CtxWarn(ctx, "Image description failed: model=%s, error=%v", s.gateway.Model(), err)
		return "", err
	}
	logger.With(logger.Fields{
		logger.FieldModel:      s.gateway.Model(),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldSize:       len(image),
	}).Info(ctx, "Image described")
	return text, nil
}

// Analyze runs the model on a photo and stores the parsed result as the pending
// draft, replacing any previous one. Only one analysis runs at a time.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - image: raw image bytes.
// Returns:
//   - *domain.Draft: copy of the new draft.
//   - error: domain.ErrEmptyInput, domain.ErrBusy, domain.ErrUnsupportedImage or a gateway error.
func (s *MealService) Analyze(ctx context.Context, image []byte) (*domain.Draft, error) {
	if len(image) == 0 {
		return nil, domain.ErrEmptyInput
	}
	if !s.analyzing.TryLock() {
		return nil, domain.ErrBusy
	}
	defer s.analyzing.Unlock()

	info, err := imaging.Sniff(image)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := s.gateway.Analyze(ctx, image)
	if err != nil {
		logger.CtxWarn(ctx, "Meal analysis failed: model=%s, error=%v", s.gateway.Model(), err)
		return nil, err
	}

	draft := &domain.Draft{
		Fields:  ParseNutrition(raw),
		RawText: raw,
		Format:  info.Format,
		Image:   append([]byte(nil), image...),
	}

	s.mu.Lock()
	s.draft = draft
	s.mu.Unlock()

	logger.With(logger.Fields{
		logger.FieldModel:      s.gateway.Model(),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldSize:       len(image),
	}).Info(ctx, "Meal analyzed: food=%q, calories=%d", draft.Fields.FoodName, draft.Fields.Calories)

	d := *draft
	return &d, nil
}

// Draft returns a copy of the pending draft.
func (s *MealService) Draft() (*domain.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil, false
	}
	d := *s.draft
	return &d, true
}

// Discard drops the pending draft and reports whether there was one.
func (s *MealService) Discard() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.draft != nil
	s.draft = nil
	return had
}

// Confirm turns the pending draft into a meal record under the requested slot.
// A rejected request leaves both the draft and the store untouched.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - req: slot and optional field overrides.
// Returns:
//   - *domain.MealRecord: the appended record.
//   - error: domain.ErrInputMissing without a draft, domain.ErrSlotMissing for an unknown slot.
func (s *MealService) Confirm(ctx context.Context, req *ConfirmRequest) (*domain.MealRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return nil, domain.ErrInputMissing
	}
	slot, ok := domain.ParseMealSlot(req.MealSlot)
	if !ok {
		return nil, domain.ErrSlotMissing
	}

	ctx = logger.WithField(ctx, logger.FieldMealSlot, string(slot))

	imageKey, err := s.storeImage(ctx, s.draft)
	if err != nil {
		return nil, err
	}

	record := domain.NewMealRecord(slot, applyEdits(s.draft.Fields, req), imageKey)
	if err := s.meals.Append(ctx, record); err != nil {
		if imageKey != "" {
			s.deleteImage(ctx, imageKey)
		}
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}
	s.draft = nil

	logger.CtxInfo(ctx, "Meal recorded: food=%q, calories=%d, image_key=%s",
		record.FoodName, record.Calories, record.ImageKey)
	return record, nil
}

func applyEdits(f domain.NutritionFields, req *ConfirmRequest) domain.NutritionFields {
	if req.FoodName != nil {
		f.FoodName = strings.TrimSpace(*req.FoodName)
	}
	if req.Calories != nil {
		f.Calories = *req.Calories
	}
	if req.CarbsGrams != nil {
		f.CarbsGrams = *req.CarbsGrams
	}
	if req.ProteinGrams != nil {
		f.ProteinGrams = *req.ProteinGrams
	}
	if req.FatGrams != nil {
		f.FatGrams = *req.FatGrams
	}
	return f
}

func (s *MealService) storeImage(ctx context.Context, d *domain.Draft) (string, error) {
	if s.storage == nil || len(d.Image) == 0 {
		return "", nil
	}
	info := imaging.Info{Format: d.Format}
	key := storage.MealImageKey(info.Extension())
	if err := s.storage.Upload(ctx, key, bytes.NewReader(d.Image), int64(len(d.Image)), info.MIMEType()); err != nil {
		return "", fmt.Errorf("failed to store meal photo: %w", err)
	}
	return key, nil
}

func (s *MealService) deleteImage(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.log(ctx).WithError(err).WithField("storage_key", key).Warn("Failed to delete meal photo")
	}
}

// List returns every meal, newest first.
func (s *MealService) List(ctx context.Context) ([]domain.MealRecord, error) {
	return s.meals.List(ctx)
}

// Remove deletes the meal at index in the newest-first list. Its photo is
// deleted best-effort.
func (s *MealService) Remove(ctx context.Context, index int) (*domain.MealRecord, error) {
	record, err := s.meals.Remove(ctx, index)
	if err != nil {
		return nil, err
	}
	if record.ImageKey != "" && s.storage != nil {
		s.deleteImage(ctx, record.ImageKey)
	}
	logger.CtxInfo(ctx, "Meal removed: index=%d, food=%q", index, record.FoodName)
	return record, nil
}

// ImageURL returns the client URL for a stored photo, or "" when none is kept.
func (s *MealService) ImageURL(key string) string {
	if key == "" || s.storage == nil {
		return ""
	}
	return s.storage.GetURL(key)
}

// OpenImage streams a stored photo.
func (s *MealService) OpenImage(ctx context.Context, key string) (*storage.Object, error) {
	if s.storage == nil {
		return nil, storage.ErrNotFound
	}
	return s.storage.Download(ctx, key)
}

// Today aggregates the current local day's meals against the session goal.
func (s *MealService) Today(ctx context.Context) (*domain.Progress, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	records, err := s.dayRecords(ctx, s.now())
	if err != nil {
		return nil, err
	}
	p := Aggregate(records, sess.GoalCalories)
	return &p, nil
}

// Summarize builds the snapshot of the local day containing day.
func (s *MealService) Summarize(ctx context.Context, day time.Time) (*domain.DailySummary, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	records, err := s.dayRecords(ctx, day)
	if err != nil {
		return nil, err
	}
	p := Aggregate(records, sess.GoalCalories)
	return &domain.DailySummary{
		UserID:       sess.UserID,
		Date:         s.dateKey(day),
		GoalCalories: p.GoalCalories,
		Consumed:     p.Consumed,
		Carbs:        p.Macros.Carbs,
		Protein:      p.Macros.Protein,
		Fat:          p.Macros.Fat,
		MealCount:    p.MealCount,
	}, nil
}

// Snapshot summarizes the current day and stores it.
func (s *MealService) Snapshot(ctx context.Context) (*domain.DailySummary, error) {
	if s.summaries == nil {
		return nil, errors.New("no summary store configured")
	}
	summary, err := s.Summarize(ctx, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.summaries.Upsert(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to store daily summary: %w", err)
	}
	logger.With(logger.Fields{
		logger.FieldCount: summary.MealCount,
	}).Info(ctx, "Daily summary stored: date=%s, consumed=%d", summary.Date.Format(time.DateOnly), summary.Consumed)
	return summary, nil
}

// History returns up to days daily summaries ending today, oldest first.
// Today is always computed live; earlier days come from stored snapshots.
func (s *MealService) History(ctx context.Context, days int) ([]domain.DailySummary, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	if days > MaxHistoryDays {
		days = MaxHistoryDays
	}

	today, err := s.Summarize(ctx, s.now())
	if err != nil {
		return nil, err
	}
	if s.summaries == nil {
		return []domain.DailySummary{*today}, nil
	}

	since := today.Date.AddDate(0, 0, -(days - 1))
	stored, err := s.summaries.ListSince(ctx, today.UserID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}

	history := make([]domain.DailySummary, 0, len(stored)+1)
	for _, d := range stored {
		if !d.Date.Before(today.Date) {
			continue
		}
		history = append(history, d)
	}
	return append(history, *today), nil
}

func (s *MealService) dayRecords(ctx context.Context, day time.Time) ([]domain.MealRecord, error) {
	local := day.In(s.loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	records, err := s.meals.ListBetween(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}
	return records, nil
}

// dateKey names the local calendar day of t as a UTC midnight.
func (s *MealService) dateKey(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
