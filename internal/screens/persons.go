package screens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/your-org/frfront/internal/client"
	"github.com/your-org/frfront/pkg/dto"
)

const (
	SearchByEmail     = "email"
	SearchByStudentID = "student_id"
	SearchByPersonID  = "person_id"
)

type RegisterInput struct {
	Name      string
	Surname   string
	Email     string
	StudentID string
	Photo     client.File
}

func (s *Service) Register(ctx context.Context, in RegisterInput) *View {
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Email = strings.TrimSpace(in.Email)
	in.StudentID = strings.TrimSpace(in.StudentID)

	ctx, act := s.begin(ctx, ScreenRegister, "register", in.Email)
	v := newView(ScreenRegister, title(ScreenRegister))

	if in.Name == "" || in.Surname == "" || in.Email == "" || in.Photo.Empty() {
		v.Error = "Please fill in every required field: name, surname, email and photo"
		return s.finish(ctx, act, v, nil)
	}

	resp, err := s.api.RegisterPerson(ctx, client.Registration{
		Name:      in.Name,
		Surname:   in.Surname,
		Email:     in.Email,
		StudentID: in.StudentID,
		Photo:     in.Photo,
	})
	if err != nil {
		v.Error = errorText(err)
		return s.finish(ctx, act, v, err)
	}

	v.Notice = "Person registered successfully"
	v.Add("Registration",
		kv("ID", resp.PersonID),
		kv("PK", orDefault(resp.PK, "N/A")),
		kv("Features extracted", resp.FeaturesCount),
		kv("Faces detected", resp.FacesDetected),
		kv("Method", orDefault(resp.ProcessingMethod, "N/A")),
		kv("Time", fmt.Sprintf("%.2fs", resp.ProcessingTime)),
	)
	v.Add("Processing", systemInfoLines(resp.SystemInfo)...)
	return s.finish(ctx, act, v, nil)
}

type SearchInput struct {
	By    string // SearchByEmail or SearchByStudentID
	Value string
}

func (s *Service) Search(ctx context.Context, in SearchInput) *View {
	value := strings.TrimSpace(in.Value)
	ctx, act := s.begin(ctx, ScreenSearch, "search_by_"+in.By, value)
	v := newView(ScreenSearch, title(ScreenSearch))

	if value == "" {
		v.Error = "Please enter a value to search for"
		return s.finish(ctx, act, v, nil)
	}

	var (
		person *dto.PersonResponse
		err    error
	)
	switch in.By {
	case SearchByEmail:
		person, err = s.api.GetPersonByEmail(ctx, value)
	case SearchByStudentID:
		person, err = s.api.GetPersonByStudentID(ctx, value)
	default:
		v.Error = fmt.Sprintf("Unknown search type %q: use %s or %s", in.By, SearchByEmail, SearchByStudentID)
		return s.finish(ctx, act, v, nil)
	}

	switch {
	case errors.Is(err, client.ErrNotFound):
		v.Error = "Person not found"
		return s.finish(ctx, act, v, err)
	case errors.Is(err, client.ErrBadRequest):
		v.Error = "Invalid format"
		return s.finish(ctx, act, v, err)
	case err != nil:
		v.Error = errorText(err)
		return s.finish(ctx, act, v, err)
	}

	v.Notice = "Person found"
	v.Add("Person", personLines(*person)...)
	if person.SystemInfo != nil {
		v.Add("Processing", systemInfoLines(*person.SystemInfo)...)
	}
	return s.finish(ctx, act, v, nil)
}

// Persons lists every registered person.
func (s *Service) Persons(ctx context.Context) *View {
	ctx, act := s.begin(ctx, ScreenPersons, "list", "")
	v := newView(ScreenPersons, title(ScreenPersons))

	list, err := s.api.ListPersons(ctx)
	if err != nil {
		v.Error = failure("Error loading persons", err)
		return s.finish(ctx, act, v, err)
	}

	v.Notice = fmt.Sprintf("%d registered persons", list.Total)
	for _, p := range list.Persons {
		v.Add(fmt.Sprintf("#%d %s", p.ID, p.FullName()),
			kv("Email", p.Correo),
			kv("Student ID", orNA(p.IDEstudiante)),
			kv("Registered", FormatDate(p.FechaRegistro)),
			kv("Active", yesNo(p.IsActive())),
		)
	}
	if list.SystemStats != nil {
		v.Add("System statistics", systemStatsLines(*list.SystemStats)...)
	}
	if p := list.Pagination; p != nil {
		v.Add("Pagination", fmt.Sprintf("Page %d of %d (%d per page)", p.Page, p.TotalPages, p.PerPage))
	}
	return s.finish(ctx, act, v, nil)
}

// UpdateFeatures replaces a person's stored features with ones extracted
// from photo.
func (s *Service) UpdateFeatures(ctx context.Context, personID int, photo client.File) *View {
	ctx, act := s.begin(ctx, ScreenUpdateFeatures, "update", strconv.Itoa(personID))
	v := newView(ScreenUpdateFeatures, title(ScreenUpdateFeatures))

	if personID <= 0 {
		v.Error = "A valid person id is required"
		return s.finish(ctx, act, v, nil)
	}
	if photo.Empty() {
		v.Error = "Please select a photo"
		return s.finish(ctx, act, v, nil)
	}

	resp, err := s.api.UpdatePersonFeatures(ctx, personID, photo)
	if err != nil {
		v.Error = failure("Error updating features", err)
		return s.finish(ctx, act, v, err)
	}

	v.Notice = orDefault(resp.Message, "Features updated")
	v.Add("Update",
		kv("Person ID", resp.PersonID),
		kv("Method", orDefault(resp.Method, "N/A")),
		kv("Features", resp.FeaturesCount),
		kv("Faces detected", resp.FacesDetected),
	)
	return s.finish(ctx, act, v, nil)
}

func personLines(p dto.PersonResponse) []string {
	return []string{
		kv("ID", p.ID),
		kv("Name", p.FullName()),
		kv("Email", p.Correo),
		kv("Student ID", orNA(p.IDEstudiante)),
		kv("Registered", FormatDate(p.FechaRegistro)),
		kv("Active", yesNo(p.IsActive())),
	}
}

func systemInfoLines(info dto.SystemInfo) []string {
	lines := []string{kv("Enhanced processing", yesNo(info.EnhancedProcessing))}
	lines = append(lines, kv("Feature method", orNA(info.FeatureMethod)))
	if info.Threshold != nil {
		lines = append(lines, kv("Threshold", percent2(*info.Threshold)))
	}
	if info.ComparisonMethod != nil {
		lines = append(lines, kv("Comparison method", *info.ComparisonMethod))
	}
	return lines
}

func systemStatsLines(st dto.SystemStats) []string {
	total := 0
	if st.TotalPersonas != nil {
		total = *st.TotalPersonas
	}
	lines := []string{kv("Total persons", total)}
	for _, k := range sortedKeys(st.PorMetodo) {
		lines = append(lines, kv("Method "+k, st.PorMetodo[k]))
	}
	for _, k := range sortedKeys(st.PorVersion) {
		lines = append(lines, kv("Version "+k, st.PorVersion[k]))
	}
	return lines
}
