// Package assistant содержит бизнес-логику AI-поддержки: эмоциональная
// поддержка, анализ настроения, рекомендации и истории. Сервис — тонкий
// прокси к внешнему chat-completion API; при любой ошибке провайдера
// возвращается статический fallback-контент вместо ошибки, так как доступность
// этой функции важнее точности.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/mindspace-backend/internal/aiprovider"
	"github.com/magabrotheeeer/mindspace-backend/internal/lib/sl"
)

// Provider описывает интерфейс клиента chat-completion API.
type Provider interface {
	CreateCompletion(ctx context.Context, req aiprovider.CompletionRequest) (string, error)
	Model() string
}

// SupportReply — ответ ассистента на сообщение пользователя.
type SupportReply struct {
	Response  string `json:"response"`
	Model     string `json:"model"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}

// MoodAnalysis — результат анализа эмоционального состояния текста.
// Форма задаётся внешним контрактом модели.
type MoodAnalysis struct {
	Mood            string   `json:"mood"`
	Emotions        []string `json:"emotions"`
	Intensity       string   `json:"intensity"`
	Concerns        []string `json:"concerns"`
	SupportiveNotes string   `json:"supportive_notes"`
	Confidence      float64  `json:"confidence"`
}

// Suggestions — персональные рекомендации по самопомощи.
type Suggestions struct {
	ImmediateActions []string `json:"immediate_actions"`
	SelfCare         []string `json:"self_care"`
	Resources        []string `json:"resources"`
	Encouragement    string   `json:"encouragement"`
}

// Story — короткая поддерживающая история.
type Story struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	Theme           string `json:"theme"`
	Takeaway        string `json:"takeaway"`
	RelatableAspect string `json:"relatable_aspect"`
}

// Service реализует операции AI-поддержки поверх внешнего провайдера.
type Service struct {
	provider Provider
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(provider Provider, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		log:      log,
	}
}

const supportSystemPrompt = "You are a compassionate AI companion providing emotional support " +
	"for a mental health platform called MindSpace. Provide empathetic, supportive responses " +
	"that validate feelings and offer gentle guidance. Never provide medical diagnoses or treatment advice."

// Support возвращает поддерживающий ответ на сообщение пользователя.
// При ошибке провайдера возвращается статический ответ с пометкой fallback.
func (s *Service) Support(ctx context.Context, message string) SupportReply {
	content, err := s.provider.CreateCompletion(ctx, aiprovider.CompletionRequest{
		Messages: []aiprovider.Message{
			{Role: "system", Content: supportSystemPrompt},
			{Role: "user", Content: message},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		s.log.Warn("support completion failed, using fallback", sl.Err(err))
		return SupportReply{
			Response: "I'm sorry, I'm having trouble connecting right now. " +
				"Please know that your feelings are valid and you're not alone.",
			Model:     "fallback",
			Error:     "AI service temporarily unavailable",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
	}
	return SupportReply{
		Response:  content,
		Model:     s.provider.Model(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// AnalyzeMood анализирует эмоциональный тон текста. Ответ модели ожидается
// в формате JSON; при ошибке провайдера или разбора возвращается нейтральный
// fallback-анализ.
func (s *Service) AnalyzeMood(ctx context.Context, text string) MoodAnalysis {
	content, err := s.provider.CreateCompletion(ctx, aiprovider.CompletionRequest{
		Messages: []aiprovider.Message{
			{Role: "system", Content: "Analyze the emotional tone and mood of the provided text. " +
				"Return your analysis in JSON format with mood, emotions, intensity, concerns, " +
				"supportive_notes, and confidence fields."},
			{Role: "user", Content: fmt.Sprintf("Please analyze the mood and emotional content of this text: %q", text)},
		},
		Temperature:    0.3,
		MaxTokens:      400,
		ResponseFormat: &aiprovider.ResponseFormat{Type: "json_object"},
	})
	if err == nil {
		var analysis MoodAnalysis
		if err = json.Unmarshal([]byte(content), &analysis); err == nil {
			return analysis
		}
	}
	s.log.Warn("mood analysis failed, using fallback", sl.Err(err))
	return MoodAnalysis{
		Mood:            "neutral",
		Emotions:        []string{"unknown"},
		Intensity:       "medium",
		Concerns:        []string{},
		SupportiveNotes: "Analysis temporarily unavailable, but your feelings are valid.",
		Confidence:      0,
	}
}

// Suggest возвращает персональные рекомендации для заданного настроения.
func (s *Service) Suggest(ctx context.Context, mood, extra string) Suggestions {
	userPrompt := "Current mood: " + mood
	if extra != "" {
		userPrompt += "\nContext: " + extra
	}
	userPrompt += "\n\nPlease provide personalized wellness suggestions."

	content, err := s.provider.CreateCompletion(ctx, aiprovider.CompletionRequest{
		Messages: []aiprovider.Message{
			{Role: "system", Content: "Provide personalized mental health and self-care suggestions " +
				"based on the user's mood. Return suggestions in JSON format with immediate_actions, " +
				"self_care, resources, and encouragement fields."},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0.7,
		MaxTokens:      500,
		ResponseFormat: &aiprovider.ResponseFormat{Type: "json_object"},
	})
	if err == nil {
		var suggestions Suggestions
		if err = json.Unmarshal([]byte(content), &suggestions); err == nil {
			return suggestions
		}
	}
	s.log.Warn("suggestions failed, using fallback", sl.Err(err))
	return fallbackSuggestions()
}

// Stories генерирует короткие поддерживающие истории по настроению и контексту.
func (s *Service) Stories(ctx context.Context, mood, storyContext, userMessage string) []Story {
	userPrompt := fmt.Sprintf("Mood: %s\nContext: %s", mood, storyContext)
	if userMessage != "" {
		userPrompt += "\nMessage: " + userMessage
	}
	userPrompt += "\n\nPlease share two short uplifting stories."

	content, err := s.provider.CreateCompletion(ctx, aiprovider.CompletionRequest{
		Messages: []aiprovider.Message{
			{Role: "system", Content: "Generate two short supportive stories about people overcoming " +
				"mental health struggles. Return a JSON object with a stories array; each story has " +
				"title, content, theme, takeaway, and relatable_aspect fields."},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0.8,
		MaxTokens:      900,
		ResponseFormat: &aiprovider.ResponseFormat{Type: "json_object"},
	})
	if err == nil {
		var parsed struct {
			Stories []Story `json:"stories"`
		}
		if err = json.Unmarshal([]byte(content), &parsed); err == nil {
			if len(parsed.Stories) > 0 {
				return parsed.Stories
			}
			err = errors.New("empty stories list")
		}
	}
	s.log.Warn("stories generation failed, using fallback", sl.Err(err))
	return fallbackStories()
}

func fallbackSuggestions() Suggestions {
	return Suggestions{
		ImmediateActions: []string{
			"Take slow, deep breaths",
			"Ground yourself by noticing 5 things you can see",
		},
		SelfCare: []string{
			"Be gentle with yourself",
			"Consider doing something small that brings comfort",
		},
		Resources:     []string{"Consider reaching out to a mental health professional"},
		Encouragement: "You're taking positive steps by seeking support.",
	}
}

func fallbackStories() []Story {
	return []Story{
		{
			Title: "Finding Light in the Darkness",
			Content: "Emma was struggling with anxiety and felt completely alone. One day, she decided " +
				"to join a small meditation group. At first, she was nervous, but the group welcomed her " +
				"with open arms. Within weeks, she not only found peace but also discovered she had a gift " +
				"for helping others. Today, she leads her own support group and helps people who feel just " +
				"like she once did.",
			Theme:           "growth",
			Takeaway:        "Your struggles can become your strength and help others",
			RelatableAspect: "feeling anxious and finding community",
		},
		{
			Title: "The Power of Small Steps",
			Content: "Michael was overwhelmed with depression and couldn't see a way forward. His " +
				"therapist suggested he start with just one small thing each day - making his bed. It " +
				"seemed silly, but he tried it. One small step led to another, and within months, he was " +
				"back to his hobbies, reconnected with friends, and even started a new career. He learned " +
				"that recovery isn't about big leaps, but consistent small steps.",
			Theme:           "resilience",
			Takeaway:        "Small steps can lead to big changes",
			RelatableAspect: "feeling stuck and finding motivation",
		},
	}
}
