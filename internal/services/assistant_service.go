package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	apperrors "github.com/mentorconnect/mentorconnect-api/pkg/errors"
	"github.com/mentorconnect/mentorconnect-api/pkg/genai"
	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
	"github.com/mentorconnect/mentorconnect-api/pkg/metrics"
	"github.com/mentorconnect/mentorconnect-api/pkg/retry"
)

// recentThreadsForContext bounds the discussion titles offered to the model
const recentThreadsForContext = 10

// User-facing fallback messages per model failure class. Kept short so
// clients can render them verbatim.
const (
	msgOverloaded   = "The assistant is busy right now. Please try again in a moment."
	msgUnauthorized = "The assistant is not available right now."
	msgMalformed    = "The assistant could not produce an answer. Please rephrase your question."
)

const faqSystemPrompt = `You are the MentorConnect FAQ assistant. You answer questions about the
mentorship platform: finding mentors, sending mentorship requests, posts,
discussions and chat. Use the provided tools to look up live platform data
when the question concerns industries, post categories or active
discussions. Answer concisely. Respond as a JSON object with a single
"answer" field containing the reply text.`

const recommendSystemPrompt = `You are a mentorship matchmaker. Given a student's interests and goals and
a list of alumni mentors, pick up to three mentors whose industry, skills
and experience best fit the student. Reply with only the chosen mentors'
names, comma-separated, and nothing else.`

// AssistantService runs the FAQ assistant and the alumni recommendation flow
type AssistantService struct {
	client         AssistantClient
	profileRepo    ProfileRepositoryInterface
	postRepo       PostRepositoryInterface
	discussionRepo DiscussionRepositoryInterface
	directory      DirectoryProvider
}

// NewAssistantService creates a new AssistantService
func NewAssistantService(client AssistantClient, profileRepo ProfileRepositoryInterface, postRepo PostRepositoryInterface, discussionRepo DiscussionRepositoryInterface, directory DirectoryProvider) *AssistantService {
	return &AssistantService{
		client:         client,
		profileRepo:    profileRepo,
		postRepo:       postRepo,
		discussionRepo: discussionRepo,
		directory:      directory,
	}
}

// Ask answers a platform question, letting the model pull live data through
// read-only tools. Model failures degrade to a friendly fallback answer
// instead of an error response.
func (s *AssistantService) Ask(ctx context.Context, question string) (*models.AskResponse, error) {
	start := time.Now()
	tools := s.faqTools()

	answer, err := retry.DoWithResult(ctx, s.retryConfig(), "assistant_ask", func() (string, error) {
		return s.client.Ask(ctx, faqSystemPrompt, question, tools)
	})

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.GenAIRequestDuration.WithLabelValues("faq", status).Observe(metrics.MeasureDuration(start))
	metrics.GenAIRequestTotal.WithLabelValues("faq", status).Inc()
	metrics.AssistantQuestions.WithLabelValues(status).Inc()

	if err != nil {
		logger.Error("Assistant question failed", zap.Error(err))
		return &models.AskResponse{Answer: fallbackMessage(err)}, nil
	}

	logger.Info("Assistant question answered",
		zap.Duration("duration", time.Since(start)))
	return &models.AskResponse{Answer: answer}, nil
}

// RecommendAlumni asks the model to shortlist mentors for the session's
// student, constrained to names that actually exist in the directory.
func (s *AssistantService) RecommendAlumni(ctx context.Context, session *models.Session) (*models.RecommendationResponse, error) {
	if session.Role != models.RoleStudent {
		return nil, apperrors.AccessDeniedError("recommendations are for students")
	}

	student, err := s.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}

	alumni, err := s.directory.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(alumni) == 0 {
		return &models.RecommendationResponse{RecommendedNames: []string{}}, nil
	}

	prompt := buildRecommendationPrompt(student, alumni)

	start := time.Now()
	raw, err := retry.DoWithResult(ctx, s.retryConfig(), "assistant_recommend", func() (string, error) {
		return s.client.Complete(ctx, recommendSystemPrompt, prompt)
	})

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.GenAIRequestDuration.WithLabelValues("recommend", status).Observe(metrics.MeasureDuration(start))
	metrics.GenAIRequestTotal.WithLabelValues("recommend", status).Inc()

	if err != nil {
		logger.Error("Alumni recommendation failed",
			zap.String("student_id", session.ProfileID),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", fallbackMessage(err), err)
	}

	names := matchDirectoryNames(raw, alumni)
	logger.Info("Alumni recommended",
		zap.String("student_id", session.ProfileID),
		zap.Int("count", len(names)))
	return &models.RecommendationResponse{RecommendedNames: names}, nil
}

func (s *AssistantService) retryConfig() retry.Config {
	cfg := retry.GenAIConfig()
	cfg.RetryableErrors = genai.IsRetryable
	return cfg
}

// faqTools exposes three read-only lookups to the model. Tool failures are
// absorbed inside the client as empty lists, so a broken lookup degrades
// the answer rather than the request.
func (s *AssistantService) faqTools() []genai.Tool {
	return []genai.Tool{
		{
			Name:        "list_alumni_industries",
			Description: "List the industries represented by alumni mentors on the platform",
			Call: func(ctx context.Context) ([]string, error) {
				return s.observedTool(ctx, "list_alumni_industries", s.profileRepo.DistinctIndustries)
			},
		},
		{
			Name:        "list_post_categories",
			Description: "List the categories of published alumni posts",
			Call: func(ctx context.Context) ([]string, error) {
				return s.observedTool(ctx, "list_post_categories", s.postRepo.DistinctCategories)
			},
		},
		{
			Name:        "list_recent_discussions",
			Description: "List the titles of the most recently active discussion threads",
			Call: func(ctx context.Context) ([]string, error) {
				return s.observedTool(ctx, "list_recent_discussions", func(ctx context.Context) ([]string, error) {
					return s.discussionRepo.RecentTitles(ctx, recentThreadsForContext)
				})
			},
		},
	}
}

// observedTool logs tool lookup failures; invocation metrics are recorded by
// the model client, which also sees tools it could not resolve.
func (s *AssistantService) observedTool(ctx context.Context, name string, fn func(context.Context) ([]string, error)) ([]string, error) {
	out, err := fn(ctx)
	if err != nil {
		logger.Warn("Assistant tool lookup failed",
			zap.String("tool", name),
			zap.Error(err))
	}
	return out, err
}

func fallbackMessage(err error) string {
	switch {
	case errors.Is(err, genai.ErrOverloaded):
		return msgOverloaded
	case errors.Is(err, genai.ErrUnauthorized):
		return msgUnauthorized
	default:
		return msgMalformed
	}
}

func buildRecommendationPrompt(student *models.Profile, alumni []*models.Profile) string {
	var b strings.Builder

	b.WriteString("Student:\n")
	fmt.Fprintf(&b, "- Name: %s\n", student.Name)
	if student.Student != nil {
		fmt.Fprintf(&b, "- College: %s (year %d)\n", student.Student.College, student.Student.Year)
		if len(student.Student.AcademicInterests) > 0 {
			fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(student.Student.AcademicInterests, ", "))
		}
		if student.Student.Goals != "" {
			fmt.Fprintf(&b, "- Goals: %s\n", student.Student.Goals)
		}
	}

	b.WriteString("\nAlumni mentors:\n")
	for _, a := range alumni {
		if a.Alumni == nil {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s at %s, industry %s, skills %s\n",
			a.Name, a.Alumni.JobTitle, a.Alumni.Company, a.Alumni.Industry,
			strings.Join(a.Alumni.Skills, "/"))
	}

	return b.String()
}

// matchDirectoryNames splits the model's comma-separated reply and keeps
// only names that exist in the directory, preserving the model's order
func matchDirectoryNames(raw string, alumni []*models.Profile) []string {
	known := make(map[string]string, len(alumni))
	for _, a := range alumni {
		known[strings.ToLower(a.Name)] = a.Name
	}

	names := []string{}
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		candidate := strings.ToLower(strings.TrimSpace(part))
		if candidate == "" || seen[candidate] {
			continue
		}
		if canonical, ok := known[candidate]; ok {
			names = append(names, canonical)
			seen[candidate] = true
		}
	}
	return names
}
