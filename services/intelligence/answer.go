package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"laohotel/models"
	"laohotel/services/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const systemPrompt = "You are Sailor2, an AI assistant for Vang Vieng, Laos tourism and hotel services. " +
	"Respond in Lao language (ພາສາລາວ) with helpful, professional information about:\n" +
	"- Hotel bookings and accommodations\n" +
	"- Tourist attractions in Vang Vieng\n" +
	"- Restaurants and local food\n" +
	"- Transportation and travel tips\n" +
	"- Adventure activities\n" +
	"Keep responses concise and friendly."

const (
	defaultTimeout       = 180 * time.Second
	fallbackContextRunes = 500
	contextOnlyPrefix    = "ຈາກຂໍ້ມູນທີ່ຂ້ອຍມີ:\n"
	// Shared by every failed generation; the source tag tells the failures apart.
	generationApology = "ຂໍອະໄພ, ລະບົບບໍ່ສາມາດສ້າງຄຳຕອບໄດ້ໃນຕອນນີ້. ກະລຸນາລອງຖາມຄຳຖາມສັ້ນໆ."
	assistantMarker      = "Assistant: "
)

type AnswerOptions struct {
	Timeout        time.Duration
	MaxConcurrency int64
	MaxNewTokens   int
	ContextChars   int
}

// Answerer wraps a Generator with a hard deadline and a bounded number of in-flight calls.
type Answerer struct {
	gen     Generator
	sem     *semaphore.Weighted
	opts    AnswerOptions
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewAnswerer accepts a nil gen, in which case every answer is built from the context alone.
func NewAnswerer(gen Generator, opts AnswerOptions, m *metrics.Metrics, logger *zap.Logger) *Answerer {
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Answerer{
		gen:     gen,
		sem:     semaphore.NewWeighted(opts.MaxConcurrency),
		opts:    opts,
		metrics: m,
		logger:  logger,
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// BuildPrompt lays out the system prompt, a truncated context and the question.
func BuildPrompt(query, ragContext string, contextChars int) string {
	var b strings.Builder
	b.WriteString("System: ")
	b.WriteString(systemPrompt)
	b.WriteString("\n\nContext: ")
	b.WriteString(truncateRunes(ragContext, contextChars))
	b.WriteString("...\n\nHuman: ")
	b.WriteString(query)
	b.WriteString("\n\n")
	b.WriteString(assistantMarker)
	return b.String()
}

// ContextOnlyReply is the answer given when no model output is available.
func ContextOnlyReply(ragContext string) string {
	return contextOnlyPrefix + truncateRunes(ragContext, fallbackContextRunes) + "..."
}

func cleanCompletion(text string) string {
	if i := strings.LastIndex(text, assistantMarker); i >= 0 {
		text = text[i+len(assistantMarker):]
	}
	return strings.TrimSpace(text)
}

type generation struct {
	text string
	err  error
}

// Answer returns a reply and its source tag. It never returns an error; failures map to
// apology replies with their own tags.
func (a *Answerer) Answer(ctx context.Context, query, ragContext string) (string, string) {
	if a.gen == nil {
		return ContextOnlyReply(ragContext), models.SourceContextOnly
	}

	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()
	start := time.Now()
	prompt := BuildPrompt(query, ragContext, a.opts.ContextChars)

	// Buffered so an abandoned worker can still deliver and exit.
	done := make(chan generation, 1)
	go func() {
		if err := a.sem.Acquire(ctx, 1); err != nil {
			done <- generation{err: err}
			return
		}
		defer a.sem.Release(1)
		text, err := a.gen.Generate(ctx, prompt, a.opts.MaxNewTokens)
		done <- generation{text: text, err: err}
	}()

	var reply, source string
	select {
	case <-ctx.Done():
		reply, source = a.timedOut(ragContext)
	case res := <-done:
		switch {
		case res.err == nil:
			reply, source = cleanCompletion(res.text), models.SourceRAGPrefix+a.gen.Variant()
		case errors.Is(res.err, context.DeadlineExceeded):
			reply, source = a.timedOut(ragContext)
		case IsResourceExhausted(res.err):
			a.logger.Error("Model resources exhausted during generation", zap.Error(res.err))
			reply, source = generationApology, models.SourceLLMResourceExhausted
		default:
			a.logger.Error("Error during LLM generation", zap.Error(res.err))
			reply, source = generationApology, models.SourceLLMError
		}
	}
	a.metrics.Generation(source, time.Since(start))
	return reply, source
}

func (a *Answerer) timedOut(ragContext string) (string, string) {
	a.logger.Warn("LLM generation timed out, using retrieved context only", zap.Duration("timeout", a.opts.Timeout))
	return ContextOnlyReply(ragContext), models.SourceContextOnlyTimeout
}
