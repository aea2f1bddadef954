package pipeline

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Vrajesh-Sharma/Blog-Agent/internal/agent"
	"github.com/Vrajesh-Sharma/Blog-Agent/internal/archive"
	"github.com/Vrajesh-Sharma/Blog-Agent/internal/session"
	"github.com/Vrajesh-Sharma/Blog-Agent/internal/telemetry"
	"github.com/Vrajesh-Sharma/Blog-Agent/models"
	"github.com/Vrajesh-Sharma/Blog-Agent/provider"
	"github.com/Vrajesh-Sharma/Blog-Agent/utils"
)

const closingNote = "\n\n---\n*Originally generated by Blog AI Agent*"

// Coordinator drives one topic through the fixed research, outline, writing
// and editing stages, feeding each stage from the previous one's output and
// reporting progress through an Emitter.
type Coordinator struct {
	Research *agent.Agent
	Outline  *agent.Agent
	Writing  *agent.Agent
	Editing  *agent.Agent

	Sessions  *session.Store
	Defaults  *session.Preferences
	Archive   archive.Archive
	Telemetry *telemetry.Telemetry
	Cooldown  time.Duration

	logger *log.Logger
}

// NewCoordinator wires the four stage agents onto one provider and model.
func NewCoordinator(prov provider.Provider, model string, retrier *agent.Retrier, sessions *session.Store, defaults *session.Preferences, arch archive.Archive, tel *telemetry.Telemetry, cooldown time.Duration) *Coordinator {
	if tel == nil {
		tel = telemetry.New(false)
	}
	if defaults == nil {
		defaults = session.NewPreferences(nil)
	}
	return &Coordinator{
		Research:  agent.NewResearchAgent(prov, model, retrier),
		Outline:   agent.NewOutlineAgent(prov, model, retrier),
		Writing:   agent.NewWritingAgent(prov, model, retrier),
		Editing:   agent.NewEditingAgent(prov, model, retrier),
		Sessions:  sessions,
		Defaults:  defaults,
		Archive:   arch,
		Telemetry: tel,
		Cooldown:  cooldown,
		logger:    log.New(log.Writer(), "[BLOG AGENT] ", log.LstdFlags),
	}
}

// Run executes the full pipeline for one topic. Request preferences overlay
// the process defaults for this run only. A stage failure stops the pipeline
// with a single terminal error event; later stages never run. Returns the
// session id in every case.
func (c *Coordinator) Run(ctx context.Context, userID, topic string, prefs models.Preferences, emit Emitter) string {
	merged := c.Defaults.Get().Merge(prefs)
	id := c.Sessions.Create(userID, topic, merged)
	start := time.Now()
	c.logger.Printf("starting generation for topic %q (session %s)", topic, id)
	c.Telemetry.GenerationStarted()
	defer func() { c.Telemetry.GenerationFinished(time.Since(start)) }()

	// research
	res, ok := c.advance(ctx, id, StageResearch, c.Research, map[string]interface{}{
		"topic":    topic,
		"audience": merged.Audience(),
	}, 0, emit)
	if !ok {
		return id
	}
	researchData := stageOutput(res)
	research := decodeResearch(res)
	c.finishStage(id, StageResearch, emit, researchData, func(rec *session.Record) {
		rec.ResearchData = researchData
	})
	c.cooldown(ctx)

	// outline
	res, ok = c.advance(ctx, id, StageOutline, c.Outline, map[string]interface{}{
		"research_key_points": research.KeyPoints,
		"topic":               topic,
		"audience":            merged.Audience(),
	}, stageProgress[StageResearch], emit)
	if !ok {
		return id
	}
	outlineData := stageOutput(res)
	// the writing stage gets the typed outline when one decoded, otherwise
	// whatever the model produced
	decoded := decodeOutline(res)
	var outlineInput interface{} = decoded
	if decoded.empty() {
		outlineInput = outlineData
	}
	c.finishStage(id, StageOutline, emit, outlineData, func(rec *session.Record) {
		rec.Outline = outlineData
	})
	c.cooldown(ctx)

	// writing
	res, ok = c.advance(ctx, id, StageWriting, c.Writing, map[string]interface{}{
		"outline":     outlineInput,
		"topic":       topic,
		"preferences": merged,
	}, stageProgress[StageOutline], emit)
	if !ok {
		return id
	}
	draft := res.Text
	c.finishStage(id, StageWriting, emit, map[string]interface{}{"content": draft}, func(rec *session.Record) {
		rec.Draft = draft
	})
	c.cooldown(ctx)

	// editing
	res, ok = c.advance(ctx, id, StageEditing, c.Editing, map[string]interface{}{
		"draft":       draft,
		"preferences": merged,
	}, stageProgress[StageWriting], emit)
	if !ok {
		return id
	}
	final := strings.TrimSpace(res.Text) + closingNote

	var stages []string
	c.Sessions.Update(id, func(rec *session.Record) {
		rec.FinalBlog = final
		rec.CurrentStage = ""
		rec.StagesCompleted = append(rec.StagesCompleted, string(StageEditing))
		rec.Status = session.StatusComplete
		stages = append([]string{}, rec.StagesCompleted...)
	})
	c.Telemetry.StageCompleted(string(StageEditing))

	elapsed := time.Since(start)
	words := utils.WordCount(final)
	emit(Event{
		Event:     "complete",
		Stage:     string(StageEditing),
		SessionID: id,
		Status:    string(session.StatusComplete),
		FinalBlog: final,
		Progress:  100,
		Metrics: &Metrics{
			WordCount:       words,
			StagesCompleted: stages,
			ElapsedSeconds:  elapsed.Seconds(),
		},
	})
	c.logger.Printf("generation completed for session %s (%d words, %.2fs)", id, words, elapsed.Seconds())

	c.save(ctx, id, topic, words)
	return id
}

// advance starts one stage: announces it, marks it current and invokes the
// agent. A failing invocation marks the session failed, emits the terminal
// error event and returns ok=false.
func (c *Coordinator) advance(ctx context.Context, id string, st Stage, ag *agent.Agent, inputs map[string]interface{}, progress int, emit Emitter) (agent.Result, bool) {
	c.logger.Printf("calling %s agent (session %s)", st, id)
	emit(Event{
		Event:    "stage_start",
		Stage:    string(st),
		Message:  startMessages[st],
		Progress: progress,
	})
	c.Sessions.Update(id, func(rec *session.Record) {
		rec.CurrentStage = string(st)
	})

	res := ag.Act(ctx, inputs, id, nil)
	if res.IsError() {
		c.logger.Printf("%s agent failed (session %s): %s", st, id, res.Err)
		c.Telemetry.StageFailed(string(st))
		c.Sessions.Update(id, func(rec *session.Record) {
			rec.Status = session.StatusFailed
			rec.Error = res.Err
		})
		emit(Event{
			Event:    "error",
			Stage:    string(st),
			Error:    res.Err,
			Status:   string(session.StatusFailed),
			Progress: progress,
		})
		return res, false
	}
	return res, true
}

// finishStage records a stage's output and emits its completion event.
func (c *Coordinator) finishStage(id string, st Stage, emit Emitter, data interface{}, store func(*session.Record)) {
	c.Sessions.Update(id, func(rec *session.Record) {
		store(rec)
		rec.StagesCompleted = append(rec.StagesCompleted, string(st))
	})
	c.Telemetry.StageCompleted(string(st))
	emit(Event{
		Event:    string(st) + "_complete",
		Stage:    string(st),
		Data:     data,
		Progress: stageProgress[st],
	})
}

// cooldown pauses between stages to stay clear of per-minute rate limits.
func (c *Coordinator) cooldown(ctx context.Context) {
	if c.Cooldown <= 0 {
		return
	}
	select {
	case <-time.After(c.Cooldown):
	case <-ctx.Done():
	}
}

// save archives the finished blog when an archive backend is configured.
func (c *Coordinator) save(ctx context.Context, id, topic string, words int) {
	if c.Archive == nil {
		return
	}
	err := c.Archive.SaveBlog(ctx, models.BlogSummary{
		ID:        id,
		Topic:     topic,
		Status:    string(session.StatusComplete),
		WordCount: words,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		c.logger.Printf("archive save failed for session %s: %v", id, err)
	}
}

// stageOutput picks the stored form of a stage result: the parsed mapping
// when one exists, otherwise the raw text as received.
func stageOutput(res agent.Result) interface{} {
	if res.Data != nil {
		return res.Data
	}
	return res.Text
}

// stringSlice coerces a decoded JSON array into strings, dropping nothing.
func stringSlice(v interface{}) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			out = append(out, utils.Str(item))
		}
		return out
	}
	return nil
}
