package service

import (
	"context"
	"fmt"
	"time"

	"selstudy/internal/model"
	"selstudy/internal/repository"
)

// In-memory stand-ins for the Mongo repositories and the Redis session store.

type memTrialRepo struct {
	trials map[string]*model.Trial

	// onCreate runs before the insert; returning an error aborts it
	onCreate func(*model.Trial) error
}

func newMemTrialRepo() *memTrialRepo {
	return &memTrialRepo{trials: map[string]*model.Trial{}}
}

func (r *memTrialRepo) Create(ctx context.Context, trial *model.Trial) error {
	if r.onCreate != nil {
		if err := r.onCreate(trial); err != nil {
			return err
		}
	}
	if _, ok := r.trials[trial.AnonID]; ok {
		return repository.ErrDuplicate
	}
	trial.ID = fmt.Sprintf("t%d", len(r.trials)+1)
	cp := *trial
	r.trials[trial.AnonID] = &cp
	return nil
}

func (r *memTrialRepo) FindByAnonID(ctx context.Context, anonID string) (*model.Trial, error) {
	if t, ok := r.trials[anonID]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *memTrialRepo) CountByGroup(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(model.Groups))
	for _, g := range model.Groups {
		counts[g] = 0
	}
	for _, t := range r.trials {
		counts[t.Group]++
	}
	return counts, nil
}

func (r *memTrialRepo) SetStartedAt(ctx context.Context, anonID string, at time.Time) error {
	if t, ok := r.trials[anonID]; ok && t.StartedAt == nil {
		t.StartedAt = &at
	}
	return nil
}

func (r *memTrialRepo) SetAnswerAndAnalysis(ctx context.Context, anonID, answer, analysisText string, analysis *model.SELAnalysis) error {
	t, ok := r.trials[anonID]
	if !ok {
		return repository.ErrNotFound
	}
	t.Answer = answer
	t.AnalysisText = analysisText
	t.Analysis = analysis
	return nil
}

func (r *memTrialRepo) AppendChatMessages(ctx context.Context, anonID string, msgs []model.ChatMessage) error {
	t, ok := r.trials[anonID]
	if !ok {
		return repository.ErrNotFound
	}
	t.ChatTranscript = append(t.ChatTranscript, msgs...)
	return nil
}

func (r *memTrialRepo) SetChatOutcome(ctx context.Context, anonID, summary string, recommendations []string, stats *model.ChatStats) error {
	t, ok := r.trials[anonID]
	if !ok {
		return repository.ErrNotFound
	}
	t.ChatSummary = summary
	t.ChatRecommendations = recommendations
	t.ChatStats = stats
	return nil
}

func (r *memTrialRepo) SetReflection(ctx context.Context, anonID string, reflection *model.Reflection) error {
	t, ok := r.trials[anonID]
	if !ok {
		return repository.ErrNotFound
	}
	t.Reflection = reflection
	return nil
}

func (r *memTrialRepo) SetEndedAt(ctx context.Context, anonID string, at time.Time) error {
	if t, ok := r.trials[anonID]; ok && t.EndedAt == nil {
		t.EndedAt = &at
	}
	return nil
}

type memScenarioRepo struct {
	variants map[string][]*model.Scenario // scenarioID -> variants
}

func newMemScenarioRepo() *memScenarioRepo {
	return &memScenarioRepo{variants: map[string][]*model.Scenario{}}
}

func (r *memScenarioRepo) add(s *model.Scenario) {
	r.variants[s.ScenarioID] = append(r.variants[s.ScenarioID], s)
}

// addAllScenarios seeds an active EN and HE variant for every assignable scenario
func (r *memScenarioRepo) addAllScenarios() {
	for _, id := range model.GroupScenarios {
		for _, lang := range []string{model.LangEN, model.LangHE} {
			r.add(&model.Scenario{
				ScenarioID: id,
				Lang:       lang,
				Title:      id + " " + lang,
				Situation:  "situation " + id,
				Active:     true,
			})
		}
	}
}

func (r *memScenarioRepo) FindVariant(ctx context.Context, scenarioID, lang string) (*model.Scenario, error) {
	for _, s := range r.variants[scenarioID] {
		if s.Lang == lang {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memScenarioRepo) FindVariants(ctx context.Context, scenarioID string) ([]*model.Scenario, error) {
	var out []*model.Scenario
	for _, s := range r.variants[scenarioID] {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memScenarioRepo) Upsert(ctx context.Context, s *model.Scenario) error {
	for i, v := range r.variants[s.ScenarioID] {
		if v.Lang == s.Lang {
			cp := *s
			r.variants[s.ScenarioID][i] = &cp
			return nil
		}
	}
	r.add(s)
	return nil
}

type memAssessmentRepo struct {
	records map[string]*model.Assessment // anonID|phase
}

func newMemAssessmentRepo() *memAssessmentRepo {
	return &memAssessmentRepo{records: map[string]*model.Assessment{}}
}

func assessmentKey(anonID, phase string) string { return anonID + "|" + phase }

func (r *memAssessmentRepo) Create(ctx context.Context, a *model.Assessment) error {
	key := assessmentKey(a.AnonID, a.Phase)
	if _, ok := r.records[key]; ok {
		return repository.ErrDuplicate
	}
	a.ID = fmt.Sprintf("a%d", len(r.records)+1)
	cp := *a
	r.records[key] = &cp
	return nil
}

func (r *memAssessmentRepo) FindByAnonAndPhase(ctx context.Context, anonID, phase string) (*model.Assessment, error) {
	if a, ok := r.records[assessmentKey(anonID, phase)]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

type memUEQRepo struct {
	records []*model.UEQAssessment
}

func (r *memUEQRepo) Create(ctx context.Context, a *model.UEQAssessment) error {
	a.ID = fmt.Sprintf("u%d", len(r.records)+1)
	cp := *a
	r.records = append(r.records, &cp)
	return nil
}

func (r *memUEQRepo) ListByAnonID(ctx context.Context, anonID string) ([]*model.UEQAssessment, error) {
	var out []*model.UEQAssessment
	for _, a := range r.records {
		if a.AnonID == anonID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memQuestionRepo struct {
	sel map[string][]*model.SELQuestion // version|lang
	ueq map[string][]*model.UEQItem
}

func newMemQuestionRepo() *memQuestionRepo {
	return &memQuestionRepo{
		sel: map[string][]*model.SELQuestion{},
		ueq: map[string][]*model.UEQItem{},
	}
}

func bankKey(version, lang string) string { return version + "|" + lang }

func (r *memQuestionRepo) ListSELQuestions(ctx context.Context, version, lang string) ([]*model.SELQuestion, error) {
	return r.sel[bankKey(version, lang)], nil
}

func (r *memQuestionRepo) UpsertSELQuestion(ctx context.Context, q *model.SELQuestion) error {
	key := bankKey(q.Version, q.Lang)
	for i, existing := range r.sel[key] {
		if existing.Key == q.Key {
			r.sel[key][i] = q
			return nil
		}
	}
	r.sel[key] = append(r.sel[key], q)
	return nil
}

func (r *memQuestionRepo) ListUEQItems(ctx context.Context, version, lang string) ([]*model.UEQItem, error) {
	return r.ueq[bankKey(version, lang)], nil
}

func (r *memQuestionRepo) UpsertUEQItem(ctx context.Context, item *model.UEQItem) error {
	key := bankKey(item.Version, item.Lang)
	for i, existing := range r.ueq[key] {
		if existing.Key == item.Key {
			r.ueq[key][i] = item
			return nil
		}
	}
	r.ueq[key] = append(r.ueq[key], item)
	return nil
}

type memTranslationRepo struct {
	entries map[string]*model.TranslationEntry
}

func newMemTranslationRepo() *memTranslationRepo {
	return &memTranslationRepo{entries: map[string]*model.TranslationEntry{}}
}

func (r *memTranslationRepo) FindByKeys(ctx context.Context, keys []string) (map[string]*model.TranslationEntry, error) {
	out := map[string]*model.TranslationEntry{}
	for _, key := range keys {
		if e, ok := r.entries[key]; ok {
			out[key] = e
		}
	}
	return out, nil
}

func (r *memTranslationRepo) InsertMany(ctx context.Context, entries []*model.TranslationEntry) error {
	for _, e := range entries {
		if _, ok := r.entries[e.Key]; !ok {
			r.entries[e.Key] = e
		}
	}
	return nil
}

type memNotificationRepo struct {
	notifications []*model.Notification
}

func (r *memNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	n.ID = fmt.Sprintf("n%d", len(r.notifications)+1)
	cp := *n
	r.notifications = append(r.notifications, &cp)
	return nil
}

func (r *memNotificationRepo) FindByID(ctx context.Context, id string) (*model.Notification, error) {
	for _, n := range r.notifications {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memNotificationRepo) ListByTeacher(ctx context.Context, teacherID string) ([]*model.Notification, error) {
	var out []*model.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].TeacherID == teacherID {
			cp := *r.notifications[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(ctx context.Context, id string) error {
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memNotificationRepo) MarkAllRead(ctx context.Context, teacherID string) (int64, error) {
	var updated int64
	for _, n := range r.notifications {
		if n.TeacherID == teacherID && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

type memClassRepo struct {
	classes     map[string]*model.Class // by ID
	submissions []*model.StudentSubmission
}

func newMemClassRepo() *memClassRepo {
	return &memClassRepo{classes: map[string]*model.Class{}}
}

func (r *memClassRepo) Create(ctx context.Context, class *model.Class) error {
	for _, c := range r.classes {
		if c.Code == class.Code {
			return repository.ErrDuplicate
		}
	}
	class.ID = fmt.Sprintf("c%d", len(r.classes)+1)
	cp := *class
	r.classes[class.ID] = &cp
	return nil
}

func (r *memClassRepo) FindByID(ctx context.Context, id string) (*model.Class, error) {
	if c, ok := r.classes[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *memClassRepo) FindByCode(ctx context.Context, code string) (*model.Class, error) {
	for _, c := range r.classes {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memClassRepo) ListByTeacher(ctx context.Context, teacherID string) ([]*model.Class, error) {
	var out []*model.Class
	for _, c := range r.classes {
		if c.TeacherID == teacherID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memClassRepo) CreateSubmission(ctx context.Context, sub *model.StudentSubmission) error {
	sub.ID = fmt.Sprintf("s%d", len(r.submissions)+1)
	cp := *sub
	r.submissions = append(r.submissions, &cp)
	return nil
}

func (r *memClassRepo) ListSubmissions(ctx context.Context, classID string) ([]*model.StudentSubmission, error) {
	var out []*model.StudentSubmission
	for _, s := range r.submissions {
		if s.ClassID == classID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memChatCache struct {
	sessions map[string][]model.ChatMessage
}

func newMemChatCache() *memChatCache {
	return &memChatCache{sessions: map[string][]model.ChatMessage{}}
}

func (c *memChatCache) Append(ctx context.Context, anonID string, msgs ...model.ChatMessage) error {
	c.sessions[anonID] = append(c.sessions[anonID], msgs...)
	return nil
}

func (c *memChatCache) Transcript(ctx context.Context, anonID string) ([]model.ChatMessage, error) {
	out := make([]model.ChatMessage, len(c.sessions[anonID]))
	copy(out, c.sessions[anonID])
	return out, nil
}

func (c *memChatCache) Clear(ctx context.Context, anonID string) error {
	delete(c.sessions, anonID)
	return nil
}

// fakeAI records calls and returns canned responses
type fakeAI struct {
	analysis *model.SELAnalysis
	reply    string
	outcome  *ChatOutcome
	score    int
	err      error

	analyzeCalls int
	chatCalls    int
	// transcripts as seen by ChatTurn, one per call
	seenTranscripts [][]model.ChatMessage
}

func newFakeAI() *fakeAI {
	return &fakeAI{
		analysis: &model.SELAnalysis{
			EmpathyScore:           7,
			PerspectiveTakingScore: 6,
			EmotionRegulationScore: 5,
			Summary:                "solid response",
		},
		reply:   "What do you think they felt?",
		outcome: &ChatOutcome{Summary: "explored empathy", Recommendations: []string{"keep asking"}},
		score:   60,
	}
}

func (f *fakeAI) AnalyzeResponse(ctx context.Context, situation, questionPrompt, answer string) (*model.SELAnalysis, string, error) {
	f.analyzeCalls++
	if f.err != nil {
		return nil, "", f.err
	}
	return f.analysis, f.analysis.Summary, nil
}

func (f *fakeAI) ChatTurn(ctx context.Context, situation string, transcript []model.ChatMessage) (string, error) {
	f.chatCalls++
	seen := make([]model.ChatMessage, len(transcript))
	copy(seen, transcript)
	f.seenTranscripts = append(f.seenTranscripts, seen)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeAI) SummarizeChat(ctx context.Context, situation string, transcript []model.ChatMessage) (*ChatOutcome, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func (f *fakeAI) ScoreSubmission(ctx context.Context, situation, answer string) (*model.SELAnalysis, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.analysis, f.score, nil
}

// stubTranslator records every batch it receives
type stubTranslator struct {
	calls [][]string
	err   error
}

func (t *stubTranslator) Translate(ctx context.Context, sourceLang, targetLang string, texts []string) ([]string, error) {
	batch := make([]string, len(texts))
	copy(batch, texts)
	t.calls = append(t.calls, batch)
	if t.err != nil {
		return nil, t.err
	}
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = "[" + targetLang + "]" + text
	}
	return out, nil
}

// stubBroadcaster records pushed events
type stubBroadcaster struct {
	events []string
}

func (b *stubBroadcaster) NotifyTeacher(teacherID, event string, payload interface{}) {
	b.events = append(b.events, teacherID+":"+event)
}
