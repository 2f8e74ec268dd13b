package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"okrproject/models"
	repository "okrproject/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound reports that the requested OKR does not exist.
var ErrNotFound = repository.ErrNotFound

// ErrKeyResultNotFound reports that the parent OKR exists but holds no Key
// Result with the requested identifier.
var ErrKeyResultNotFound = errors.New("key result not found")

// ValidationError is a rejected input; handlers surface it as a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErr(msg string) error {
	return &ValidationError{Msg: msg}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(value string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

type OKRService interface {
	CreateOKR(ctx context.Context, req *models.CreateOKRRequest) (*models.OKR, error)
	GetOKRs(ctx context.Context, filter models.OKRFilter, page, limit int) (*models.OKRListResponse, error)
	GetOKRByID(ctx context.Context, id primitive.ObjectID) (*models.OKR, error)
	GetOKRsByOwner(ctx context.Context, ownerID primitive.ObjectID, filter models.OKRFilter) ([]models.OKR, error)
	UpdateOKR(ctx context.Context, id primitive.ObjectID, req *models.UpdateOKRRequest) (*models.OKR, error)
	DeleteOKR(ctx context.Context, id primitive.ObjectID) error
	AddKeyResult(ctx context.Context, id primitive.ObjectID, req *models.AddKeyResultRequest) (*models.OKR, error)
	UpdateKeyResult(ctx context.Context, id, keyResultID primitive.ObjectID, req *models.UpdateKeyResultRequest) (*models.OKR, error)
	DeleteKeyResult(ctx context.Context, id, keyResultID primitive.ObjectID) (*models.OKR, error)
	GetOKRStats(ctx context.Context, filter models.OKRFilter) (*models.OKRStats, error)
}

type okrService struct {
	repo  repository.OKRRepository
	users repository.UserRepository
	now   func() time.Time
}

func NewOKRService(repo repository.OKRRepository, users repository.UserRepository) OKRService {
	return &okrService{
		repo:  repo,
		users: users,
		now:   time.Now,
	}
}

func (s *okrService) CreateOKR(ctx context.Context, req *models.CreateOKRRequest) (*models.OKR, error) {
	title := strings.TrimSpace(req.Title)
	if len(title) < 3 {
		return nil, validationErr("Title is required and must be at least 3 characters")
	}

	owner, err := primitive.ObjectIDFromHex(req.Owner)
	if err != nil {
		return nil, validationErr("Invalid owner ID format")
	}

	if !validPeriod(req.Period) {
		return nil, validationErr("Period is required and must be one of: Q1, Q2, Q3, Q4, annual, custom")
	}

	if req.Year < 2000 || req.Year > 2100 {
		return nil, validationErr("Year is required and must be a valid number")
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, validationErr("Dates must be valid")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, validationErr("Dates must be valid")
	}
	if !start.Before(end) {
		return nil, validationErr("Start date must be before end date")
	}

	now := s.now()

	keyResults := make([]models.KeyResult, 0, len(req.KeyResults))
	for _, input := range req.KeyResults {
		krTitle := strings.TrimSpace(input.Title)
		if len(krTitle) < 3 {
			return nil, validationErr("Each Key Result must have a title of at least 3 characters")
		}
		if input.TargetValue == nil {
			return nil, validationErr("Each Key Result must have a numeric target value")
		}

		kr := models.KeyResult{
			ID:              primitive.NewObjectID(),
			Title:           krTitle,
			Description:     strings.TrimSpace(input.Description),
			TargetValue:     *input.TargetValue,
			Unit:            strings.TrimSpace(input.Unit),
			Status:          models.KRStatusNotStarted,
			ProgressRecords: []models.ProgressRecord{},
			Responsibles:    []primitive.ObjectID{},
		}
		if input.CurrentValue != nil {
			kr.CurrentValue = *input.CurrentValue
		}

		// Progress is always derived, never taken from the client.
		models.RecalculateKeyResultProgress(&kr)
		models.ApplyKeyResultProgressStatus(&kr, now)

		keyResults = append(keyResults, kr)
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	okr := &models.OKR{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Owner:       owner,
		Period:      req.Period,
		Year:        req.Year,
		StartDate:   start,
		EndDate:     end,
		KeyResults:  keyResults,
		Status:      models.StatusDraft,
		Category:    strings.TrimSpace(req.Category),
		Tags:        tags,
		Notes:       strings.TrimSpace(req.Notes),
		Team:        strings.TrimSpace(req.Team),
		Visibility:  visibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	models.CalculateOverallProgress(okr)
	models.UpdateOKRStatus(okr, now)

	if err := s.repo.Create(ctx, okr); err != nil {
		return nil, err
	}

	if err := s.expandOwner(ctx, okr); err != nil {
		return nil, err
	}

	return okr, nil
}

func (s *okrService) GetOKRs(ctx context.Context, filter models.OKRFilter, page, limit int) (*models.OKRListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := buildFilter(filter)
	skip := int64(page-1) * int64(limit)

	okrs, err := s.repo.Find(ctx, query, skip, int64(limit))
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := s.expandOwners(ctx, okrs); err != nil {
		return nil, err
	}

	return &models.OKRListResponse{
		OKRs: okrs,
		Pagination: models.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

func (s *okrService) GetOKRByID(ctx context.Context, id primitive.ObjectID) (*models.OKR, error) {
	okr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.expandOwner(ctx, okr); err != nil {
		return nil, err
	}

	return okr, nil
}

func (s *okrService) GetOKRsByOwner(ctx context.Context, ownerID primitive.ObjectID, filter models.OKRFilter) ([]models.OKR, error) {
	query := buildFilter(filter)
	query["owner"] = ownerID

	okrs, err := s.repo.FindAll(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := s.expandOwners(ctx, okrs); err != nil {
		return nil, err
	}

	return okrs, nil
}

func (s *okrService) UpdateOKR(ctx context.Context, id primitive.ObjectID, req *models.UpdateOKRRequest) (*models.OKR, error) {
	okr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if len(title) < 3 {
			return nil, validationErr("Title must be at least 3 characters")
		}
		okr.Title = title
	}
	if req.Description != nil {
		okr.Description = strings.TrimSpace(*req.Description)
	}
	if req.Period != nil {
		if !validPeriod(*req.Period) {
			return nil, validationErr("Period must be one of: Q1, Q2, Q3, Q4, annual, custom")
		}
		okr.Period = *req.Period
	}
	if req.Year != nil {
		if *req.Year < 2000 || *req.Year > 2100 {
			return nil, validationErr("Year must be a valid number")
		}
		okr.Year = *req.Year
	}

	// Date changes are validated against the stored counterpart when only one
	// side is supplied.
	if req.StartDate != nil || req.EndDate != nil {
		start := okr.StartDate
		end := okr.EndDate

		if req.StartDate != nil {
			if start, err = parseDate(*req.StartDate); err != nil {
				return nil, validationErr("Dates must be valid")
			}
		}
		if req.EndDate != nil {
			if end, err = parseDate(*req.EndDate); err != nil {
				return nil, validationErr("Dates must be valid")
			}
		}
		if !start.Before(end) {
			return nil, validationErr("Start date must be before end date")
		}

		okr.StartDate = start
		okr.EndDate = end
	}

	if req.Status != nil {
		if !validOKRStatus(*req.Status) {
			return nil, validationErr("Status must be one of: draft, active, completed, paused, cancelled")
		}
		okr.Status = *req.Status
	}
	if req.Category != nil {
		okr.Category = strings.TrimSpace(*req.Category)
	}
	if req.Tags != nil {
		okr.Tags = *req.Tags
	}
	if req.Notes != nil {
		okr.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Team != nil {
		okr.Team = strings.TrimSpace(*req.Team)
	}
	if req.Visibility != nil {
		if !validVisibility(*req.Visibility) {
			return nil, validationErr("Visibility must be one of: private, team, public")
		}
		okr.Visibility = *req.Visibility
	}

	now := s.now()
	okr.UpdatedAt = now
	models.CalculateOverallProgress(okr)
	models.UpdateOKRStatus(okr, now)

	if err := s.repo.Replace(ctx, id, okr); err != nil {
		return nil, err
	}

	if err := s.expandOwner(ctx, okr); err != nil {
		return nil, err
	}

	return okr, nil
}

func (s *okrService) DeleteOKR(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

func (s *okrService) AddKeyResult(ctx context.Context, id primitive.ObjectID, req *models.AddKeyResultRequest) (*models.OKR, error) {
	title := strings.TrimSpace(req.Title)
	if len(title) < 3 {
		return nil, validationErr("Title is required and must be at least 3 characters")
	}
	if req.TargetValue == nil {
		return nil, validationErr("Target value is required and must be a number")
	}

	okr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	keyResult := models.KeyResult{
		ID:              primitive.NewObjectID(),
		Title:           title,
		Description:     strings.TrimSpace(req.Description),
		CurrentValue:    0,
		TargetValue:     *req.TargetValue,
		Unit:            strings.TrimSpace(req.Unit),
		Progress:        0,
		Status:          models.KRStatusNotStarted,
		ProgressRecords: []models.ProgressRecord{},
		Responsibles:    []primitive.ObjectID{},
	}

	now := s.now()
	okr.KeyResults = append(okr.KeyResults, keyResult)
	okr.UpdatedAt = now
	models.CalculateOverallProgress(okr)
	models.UpdateOKRStatus(okr, now)

	if err := s.repo.Replace(ctx, id, okr); err != nil {
		return nil, err
	}

	if err := s.expandOwner(ctx, okr); err != nil {
		return nil, err
	}

	return okr, nil
}

func (s *okrService) UpdateKeyResult(ctx context.Context, id, keyResultID primitive.ObjectID, req *models.UpdateKeyResultRequest) (*models.OKR, error) {
	okr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var keyResult *models.KeyResult
	for i := range okr.KeyResults {
		if okr.KeyResults[i].ID == keyResultID {
			keyResult = &okr.KeyResults[i]
			break
		}
	}
	if keyResult == nil {
		return nil, ErrKeyResultNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if len(title) < 3 {
			return nil, validationErr("Title must be at least 3 characters")
		}
		keyResult.Title = title
	}
	if req.Description != nil {
		keyResult.Description = strings.TrimSpace(*req.Description)
	}
	if req.Unit != nil {
		keyResult.Unit = strings.TrimSpace(*req.Unit)
	}

	valuesChanged := false
	if req.TargetValue != nil {
		keyResult.TargetValue = *req.TargetValue
		valuesChanged = true
	}
	if req.CurrentValue != nil {
		keyResult.CurrentValue = *req.CurrentValue
		valuesChanged = true
	}

	if req.Status != nil {
		if !validKeyResultStatus(*req.Status) {
			return nil, validationErr("Status must be one of: not_started, in_progress, completed, at_risk")
		}
		keyResult.Status = *req.Status
	}

	now := s.now()

	if valuesChanged {
		models.RecalculateKeyResultProgress(keyResult)
		models.ApplyKeyResultProgressStatus(keyResult, now)
	}

	// A manual completion overrides the computed progress.
	if req.Status != nil && *req.Status == models.KRStatusCompleted && keyResult.Progress < 100 {
		models.CompleteKeyResult(keyResult, now)
	}

	okr.UpdatedAt = now
	models.CalculateOverallProgress(okr)
	models.UpdateOKRStatus(okr, now)

	if err := s.repo.Replace(ctx, id, okr); err != nil {
		return nil, err
	}

	if err := s.expandOwner(ctx, okr); err != nil {
		return nil, err
	}

	return okr, nil
}

func (s *okrService) DeleteKeyResult(ctx context.Context, id, keyResultID primitive.ObjectID) (*models.OKR, error) {
	okr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range okr.KeyResults {
		if okr.KeyResults[i].ID == keyResultID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrKeyResultNotFound
	}

	now := s.now()
	okr.KeyResults = append(okr.KeyResults[:index], okr.KeyResults[index+1:]...)
	okr.UpdatedAt = now
	models.CalculateOverallProgress(okr)
	models.UpdateOKRStatus(okr, now)

	if err := s.repo.Replace(ctx, id, okr); err != nil {
		return nil, err
	}

	if err := s.expandOwner(ctx, okr); err != nil {
		return nil, err
	}

	return okr, nil
}

// GetOKRStats reduces the full set of matching OKRs into summary counts and
// an average progress figure.
func (s *okrService) GetOKRStats(ctx context.Context, filter models.OKRFilter) (*models.OKRStats, error) {
	okrs, err := s.repo.FindAll(ctx, buildFilter(filter))
	if err != nil {
		return nil, err
	}

	stats := &models.OKRStats{
		Total:    len(okrs),
		ByStatus: make(map[string]int, len(models.OKRStatuses)),
	}
	for _, status := range models.OKRStatuses {
		stats.ByStatus[status] = 0
	}

	totalProgress := 0
	for _, okr := range okrs {
		stats.ByStatus[okr.Status]++
		totalProgress += okr.OverallProgress

		switch okr.Status {
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusActive:
			stats.InProgress++
		}
	}

	if len(okrs) > 0 {
		stats.AverageProgress = int(math.Round(float64(totalProgress) / float64(len(okrs))))
	}

	return stats, nil
}

// expandOwner attaches the owner's public summary to the OKR. A dangling
// owner reference is not an error; the store never enforced it.
func (s *okrService) expandOwner(ctx context.Context, okr *models.OKR) error {
	user, err := s.users.GetByID(ctx, okr.Owner)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	okr.OwnerInfo = user.Summary()
	return nil
}

func (s *okrService) expandOwners(ctx context.Context, okrs []models.OKR) error {
	summaries := make(map[primitive.ObjectID]*models.UserSummary)

	for i := range okrs {
		if summary, ok := summaries[okrs[i].Owner]; ok {
			okrs[i].OwnerInfo = summary
			continue
		}

		user, err := s.users.GetByID(ctx, okrs[i].Owner)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return err
		}

		summaries[okrs[i].Owner] = user.Summary()
		okrs[i].OwnerInfo = summaries[okrs[i].Owner]
	}

	return nil
}

func buildFilter(filter models.OKRFilter) bson.M {
	query := bson.M{}

	if filter.Owner != "" {
		// Stored owners are ObjectIDs; an unparseable filter value matches
		// nothing rather than failing the query.
		if oid, err := primitive.ObjectIDFromHex(filter.Owner); err == nil {
			query["owner"] = oid
		} else {
			query["owner"] = filter.Owner
		}
	}
	if filter.Period != "" {
		query["period"] = filter.Period
	}
	if filter.Year != 0 {
		query["year"] = filter.Year
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Team != "" {
		query["team"] = filter.Team
	}
	if filter.Visibility != "" {
		query["visibility"] = filter.Visibility
	}

	return query
}

func validPeriod(period string) bool {
	switch period {
	case models.PeriodQ1, models.PeriodQ2, models.PeriodQ3, models.PeriodQ4, models.PeriodAnnual, models.PeriodCustom:
		return true
	}
	return false
}

func validOKRStatus(status string) bool {
	switch status {
	case models.StatusDraft, models.StatusActive, models.StatusCompleted, models.StatusPaused, models.StatusCancelled:
		return true
	}
	return false
}

func validKeyResultStatus(status string) bool {
	switch status {
	case models.KRStatusNotStarted, models.KRStatusInProgress, models.KRStatusCompleted, models.KRStatusAtRisk:
		return true
	}
	return false
}

func validVisibility(visibility string) bool {
	switch visibility {
	case models.VisibilityPrivate, models.VisibilityTeam, models.VisibilityPublic:
		return true
	}
	return false
}
