package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/your-org/frfront/internal/client"
	"github.com/your-org/frfront/internal/models"
	"github.com/your-org/frfront/pkg/dto"
)

type RecognitionInput struct {
	By    string // SearchByEmail, SearchByStudentID or SearchByPersonID
	Value string
	Image client.File
}

// Recognize compares Image against one registered person.
func (s *Service) Recognize(ctx context.Context, in RecognitionInput) *View {
	value := strings.TrimSpace(in.Value)
	ctx, act := s.begin(ctx, ScreenRecognition, "recognize_by_"+in.By, value)
	v := newView(ScreenRecognition, title(ScreenRecognition))

	if value == "" {
		v.Error = "Please enter the person to compare against"
		return s.finish(ctx, act, v, nil)
	}
	if in.Image.Empty() {
		v.Error = "Please select a photo"
		return s.finish(ctx, act, v, nil)
	}

	var (
		resp *dto.RecognitionResponse
		err  error
	)
	switch in.By {
	case SearchByEmail:
		resp, err = s.api.RecognizeByEmail(ctx, value, in.Image)
	case SearchByStudentID:
		resp, err = s.api.RecognizeByStudentID(ctx, value, in.Image)
	case SearchByPersonID:
		id, convErr := strconv.Atoi(value)
		if convErr != nil || id <= 0 {
			v.Error = fmt.Sprintf("Invalid person id %q", value)
			return s.finish(ctx, act, v, nil)
		}
		resp, err = s.api.RecognizeByPersonID(ctx, id, in.Image)
	default:
		v.Error = fmt.Sprintf("Unknown recognition type %q: use %s, %s or %s",
			in.By, SearchByEmail, SearchByStudentID, SearchByPersonID)
		return s.finish(ctx, act, v, nil)
	}
	if err != nil {
		v.Error = errorText(err)
		return s.finish(ctx, act, v, err)
	}

	person, r := resp.Person, resp.RecognitionResult
	if r.IsMatch {
		v.Notice = "MATCH FOUND"
	} else {
		v.Notice = "NO MATCH"
	}
	act.matched(models.Match{
		PersonID:   person.ID,
		Name:       person.FullName(),
		Similarity: r.Similarity,
		IsMatch:    r.IsMatch,
	})

	v.Add("Person",
		kv("Name", person.FullName()),
		kv("Email", person.Correo),
		kv("Student ID", orNA(person.IDEstudiante)),
	)
	v.Add("Analysis",
		kv("Similarity", percent2(r.Similarity)),
		kv("Threshold", percent2(r.Threshold)),
		kv("Confidence", percent2(floatOr(r.Confidence, 0))),
		kv("Faces detected", r.FacesDetected),
		kv("Features", r.FeaturesCompared),
		kv("Method", orNA(r.ProcessingMethod)),
	)
	if r.HasDetailedMetrics() {
		v.Add("Detailed metrics",
			kv("Cosine similarity", FormatMetric(*r.CosineSimilarity)),
			kv("Correlation", FormatMetric(floatOr(r.Correlation, 0))),
			kv("Euclidean similarity", FormatMetric(floatOr(r.EuclideanSimilarity, 0))),
			kv("Manhattan similarity", FormatMetric(floatOr(r.ManhattanSimilarity, 0))),
		)
	}
	return s.finish(ctx, act, v, nil)
}

// Identify searches the whole database for the face in image.
func (s *Service) Identify(ctx context.Context, image client.File) *View {
	ctx, act := s.begin(ctx, ScreenIdentification, "identify", image.Name)
	v := newView(ScreenIdentification, title(ScreenIdentification))

	if image.Empty() {
		v.Error = "Please select a photo"
		return s.finish(ctx, act, v, nil)
	}

	resp, err := s.api.Identify(ctx, image)
	if err != nil {
		v.Error = errorText(err)
		return s.finish(ctx, act, v, err)
	}

	result := resp.IdentificationResult
	best := result.BestMatch
	switch {
	case best != nil && best.IsMatch:
		v.Notice = "Person identified: " + best.Person.FullName()
	case best != nil:
		v.Notice = "No confident match; closest candidate: " + best.Person.FullName()
	default:
		v.Notice = "No matching person found"
	}

	bestSimilarity := 0.0
	if best != nil {
		bestSimilarity = best.Similarity
		act.matched(models.Match{
			PersonID:   best.Person.ID,
			Name:       best.Person.FullName(),
			Similarity: best.Similarity,
			IsMatch:    best.IsMatch,
		})
		v.Add("Best match", matchLines(*best, true)...)
	}

	v.Add("Analysis",
		kv("Faces detected", result.FacesDetected),
		kv("Comparisons", result.TotalComparisons),
		kv("Best similarity", percent2(bestSimilarity)),
		kv("Confidence", percent2(result.Confidence)),
		kv("Processing method", orNA(result.ProcessingMethod)),
		kv("Feature extraction", orNA(result.FeatureExtractionMethod)),
	)

	for i, m := range resp.AllMatches {
		v.Add(fmt.Sprintf("Candidate %d", i+1), matchLines(m, false)...)
	}
	return s.finish(ctx, act, v, nil)
}

func matchLines(m dto.IdentificationMatch, main bool) []string {
	lines := []string{
		kv("Name", m.Person.FullName()),
		kv("Email", m.Person.Correo),
	}
	if m.Person.IDEstudiante != nil && *m.Person.IDEstudiante != "" {
		lines = append(lines, kv("Student ID", *m.Person.IDEstudiante))
	}
	lines = append(lines, kv("Match", FormatPercentage(m.Similarity)))

	if main || m.DetailedMetrics != nil {
		lines = append(lines,
			kv("Similarity", FormatMetric(m.Similarity)),
			kv("Threshold", FormatMetric(m.Threshold)),
			kv("Confidence", FormatMetric(floatOr(m.Confidence, 0))),
		)
	}
	if d := m.DetailedMetrics; d != nil {
		lines = append(lines,
			kv("Cosine", FormatMetric(d.CosineSimilarity)),
			kv("Correlation", FormatMetric(d.Correlation)),
			kv("Euclidean", FormatMetric(d.EuclideanSimilarity)),
			kv("Manhattan", FormatMetric(d.ManhattanSimilarity)),
			kv("Consistency", FormatMetric(d.Consistency)),
			kv("Adjusted threshold", FormatMetric(d.AdjustedThreshold)),
		)
	}
	if main {
		version := "1.0"
		if m.Person.VersionAlgoritmo != nil {
			version = *m.Person.VersionAlgoritmo
		}
		lines = append(lines, fmt.Sprintf("Method: %s v%s", orNA(m.Person.MetodoCaracteristicas), version))
	}
	return lines
}
