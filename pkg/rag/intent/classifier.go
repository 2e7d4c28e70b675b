package intent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/pkg/llm"
)

type Method string

const (
	MethodGreeting Method = "greeting"
	MethodKeyword  Method = "keyword"
	MethodFallback Method = "fallback"
	// MethodDegraded means the fallback failed and General was assumed.
	MethodDegraded Method = "degraded"
)

type Result struct {
	Category Category
	// Response is set only when the classifier answers the query itself.
	Response string
	Method   Method
}

const fallbackSystemPrompt = `You are a router for an internal admin assistant. Classify the user's request into exactly one category.

Categories:
- crm: leads, prospects, campaigns, deals, customers, tasks, activity logs, notes, trainers, instructors, learners, students, courses
- lms: training batches, lessons, classes, curriculum, cohorts, enrollments
- rms: candidates, applicants, jobs, recruitment, interviews, resumes
- hrms: employees, staff, attendance, leave, payroll, departments
- rag: company policies, handbooks, procedures, internal documents
- general: off-topic or unclear requests

Rules:
- Trainers and instructors are always crm.
- Courses and programs are crm; training batches are lms.
- If the request is not about the systems above, answer general.

Return ONLY the category name in lowercase.`

type Classifier struct {
	table    *KeywordTable
	provider llm.LLMProvider
	timeout  time.Duration
	logger   logger.ILogger
}

func NewClassifier(table *KeywordTable, provider llm.LLMProvider, timeout time.Duration, log logger.ILogger) *Classifier {
	return &Classifier{table: table, provider: provider, timeout: timeout, logger: log}
}

// Classify never fails: every error path resolves to General.
func (c *Classifier) Classify(ctx context.Context, query string, history []llm.Message) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("INTENT", "Classification panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			res = Result{Category: General, Method: MethodDegraded}
		}
	}()

	if IsGreeting(query) {
		return Result{Category: None, Response: GreetingResponse, Method: MethodGreeting}
	}

	if cat, ok := c.table.Best(Tokens(query)); ok {
		return Result{Category: cat, Method: MethodKeyword}
	}

	cat, err := c.fallback(ctx, query, history)
	if err != nil {
		c.logger.Warn("INTENT", "Fallback classification failed, using general", map[string]interface{}{
			"error": err.Error(),
		})
		return Result{Category: General, Method: MethodDegraded}
	}
	return Result{Category: cat, Method: MethodFallback}
}

func (c *Classifier) fallback(ctx context.Context, query string, history []llm.Message) (Category, error) {
	if c.provider == nil {
		return General, fmt.Errorf("no llm provider configured")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := llm.Complete(ctx, c.provider, fallbackSystemPrompt, query, history,
		llm.WithTemperature(0), llm.WithMaxTokens(10))
	if err != nil {
		return General, err
	}
	return Coerce(out), nil
}

// Coerce maps a free-form model reply onto the routable vocabulary.
func Coerce(reply string) Category {
	cleaned := strings.Trim(strings.ToLower(strings.TrimSpace(reply)), "\"'`.,:;!?* \t\n")
	cat := Category(cleaned)
	if cat.Retrievable() || cat == General {
		return cat
	}
	return General
}
