package history

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/thebtf/promptdeck/internal/slot"
	"github.com/thebtf/promptdeck/pkg/models"
)

// recordingSlot wraps a memory slot and counts writes.
type recordingSlot struct {
	*slot.Memory
	failPut error
	puts    [][]byte
}

func newRecordingSlot() *recordingSlot {
	return &recordingSlot{Memory: slot.NewMemory()}
}

func (r *recordingSlot) Put(ctx context.Context, name string, data []byte) error {
	if r.failPut != nil {
		return r.failPut
	}
	r.puts = append(r.puts, append([]byte(nil), data...))
	return r.Memory.Put(ctx, name, data)
}

func testRecord(id int64, text string) models.PromptRecord {
	return models.PromptRecord{
		ID:        id,
		Text:      text,
		CreatedAt: "2026-10-01T12:00:00.000Z",
		Suggestions: []string{
			"Write a story about " + text,
			"Create a tutorial on " + text,
			"Design a character based on " + text,
			"Develop a business idea around " + text,
			"Make a song lyric about " + text,
		},
		Category: models.CategoryGeneral,
	}
}

// StoreSuite exercises Store against a recording in-memory slot.
type StoreSuite struct {
	suite.Suite
	slot  *recordingSlot
	store *Store
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	s.slot = newRecordingSlot()
	s.store = NewStore(s.slot, "")
	s.ctx = context.Background()
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) TestDefaultSlotName() {
	s.Equal(DefaultSlotName, s.store.SlotName())
	s.Equal("promptHistory", s.store.SlotName())
}

func (s *StoreSuite) TestLoad_Absent() {
	list, err := s.store.Load(s.ctx)
	s.NoError(err)
	s.NotNil(list)
	s.Empty(list)
}

func (s *StoreSuite) TestLoad_Corrupted() {
	for _, raw := range []string{`{not json`, `{"id":1}`, `null`, `[{"id":1,"text":"x","suggestions":[]}]`, `"str"`} {
		s.Require().NoError(s.slot.Memory.Put(s.ctx, DefaultSlotName, []byte(raw)))
		list, err := s.store.Load(s.ctx)
		s.NoError(err, raw)
		s.Empty(list, raw)
	}
}

func (s *StoreSuite) TestLoad_MalformedLogsDiscardedRecords() {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = orig }()

	good := testRecord(2, "kept")
	raw := fmt.Sprintf(`[%s,{"id":1,"text":"x","suggestions":[]}]`, mustJSON(s.T(), good))
	s.Require().NoError(s.slot.Memory.Put(s.ctx, DefaultSlotName, []byte(raw)))

	list, err := s.store.Load(s.ctx)
	s.NoError(err)
	s.Empty(list)

	var entry map[string]interface{}
	s.Require().NoError(json.Unmarshal(buf.Bytes(), &entry))
	s.Equal("warn", entry["level"])
	s.EqualValues(2, entry["records"])
	s.EqualValues(len(raw), entry["bytes"])
	s.Equal(DefaultSlotName, entry["slot"])
}

func TestCountRecords(t *testing.T) {
	assert.Equal(t, 0, countRecords([]byte(`[]`)))
	assert.Equal(t, 3, countRecords([]byte(`[1,{"a":2},"x"]`)))
	assert.Equal(t, -1, countRecords([]byte(`null`)))
	assert.Equal(t, -1, countRecords([]byte(`{not json`)))
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func (s *StoreSuite) TestSaveLoad_RoundTrip() {
	a := testRecord(3, "tea")
	a.Category = models.CategoryPersonal
	b := testRecord(2, "learn go")
	b.Category = models.CategoryEducation
	c := testRecord(1, "space exploration")
	list := models.HistoryList{a, b, c}

	s.Require().NoError(s.store.Save(s.ctx, list))
	got, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(list, got)
}

func (s *StoreSuite) TestSave_EmptyIsArray() {
	s.Require().NoError(s.store.Save(s.ctx, nil))
	s.Equal(`[]`, string(s.slot.puts[0]))
}

func (s *StoreSuite) TestAdd_PrependsAndPersists() {
	list, err := s.store.Add(s.ctx, nil, testRecord(1, "first"))
	s.Require().NoError(err)
	list, err = s.store.Add(s.ctx, list, testRecord(2, "second"))
	s.Require().NoError(err)

	s.Equal([]int64{2, 1}, list.IDs())
	s.Len(s.slot.puts, 2)

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(list, loaded)
}

func (s *StoreSuite) TestRemove_MissingIDStillPersists() {
	list := models.HistoryList{testRecord(2, "b"), testRecord(1, "a")}
	s.Require().NoError(s.store.Save(s.ctx, list))

	got, err := s.store.Remove(s.ctx, list, 99)
	s.Require().NoError(err)
	s.Equal(list, got)
	s.Len(s.slot.puts, 2)

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(list, loaded)
}

func (s *StoreSuite) TestRemove_Existing() {
	list := models.HistoryList{testRecord(3, "c"), testRecord(2, "b"), testRecord(1, "a")}
	got, err := s.store.Remove(s.ctx, list, 2)
	s.Require().NoError(err)
	s.Equal([]int64{3, 1}, got.IDs())

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal([]int64{3, 1}, loaded.IDs())
}

func (s *StoreSuite) TestClear_Idempotent() {
	_, err := s.store.Add(s.ctx, nil, testRecord(1, "a"))
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		got, err := s.store.Clear(s.ctx)
		s.Require().NoError(err)
		s.Empty(got)
		s.Equal(`[]`, string(s.slot.puts[len(s.slot.puts)-1]))
	}
	s.Len(s.slot.puts, 3)

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(loaded)
}

func (s *StoreSuite) TestMutate_FailedWriteKeepsInput() {
	list := models.HistoryList{testRecord(1, "a")}
	boom := errors.New("disk full")
	s.slot.failPut = boom

	got, err := s.store.Add(s.ctx, list, testRecord(2, "b"))
	s.ErrorIs(err, boom)
	s.Equal(list, got)

	got, err = s.store.Remove(s.ctx, list, 1)
	s.ErrorIs(err, boom)
	s.Equal(list, got)
}

// failingGetSlot reports a backend error on reads.
type failingGetSlot struct{ *slot.Memory }

func (failingGetSlot) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func TestStore_LoadBackendError(t *testing.T) {
	store := NewStore(failingGetSlot{slot.NewMemory()}, "")
	list, err := store.Load(context.Background())
	assert.Error(t, err)
	assert.Empty(t, list)
}

func TestAdd_DoesNotMutateInput(t *testing.T) {
	list := models.HistoryList{testRecord(1, "a")}
	got := Add(list, testRecord(2, "b"))
	assert.Equal(t, []int64{1}, list.IDs())
	assert.Equal(t, []int64{2, 1}, got.IDs())
}

func TestAdd_ReplacesSameID(t *testing.T) {
	list := models.HistoryList{testRecord(2, "b"), testRecord(1, "a")}
	got := Add(list, testRecord(1, "again"))
	assert.Equal(t, []int64{1, 2}, got.IDs())
	assert.Equal(t, "again", got[0].Text)
}

func TestRemove_DoesNotMutateInput(t *testing.T) {
	list := models.HistoryList{testRecord(2, "b"), testRecord(1, "a")}
	got := Remove(list, 2)
	assert.Equal(t, []int64{2, 1}, list.IDs())
	assert.Equal(t, []int64{1}, got.IDs())
}

func TestFind(t *testing.T) {
	list := models.HistoryList{testRecord(2, "b"), testRecord(1, "a")}
	r, ok := Find(list, 1)
	assert.True(t, ok)
	assert.Equal(t, "a", r.Text)

	_, ok = Find(list, 5)
	assert.False(t, ok)
}

func TestDecode_LegacyCategory(t *testing.T) {
	raw := `[
		{"id": 3, "text": "a", "createdAt": "2026-10-01T00:00:00.000Z", "suggestions": ["1","2","3","4","5"]},
		{"id": 2, "text": "b", "createdAt": "2026-10-01T00:00:00.000Z", "suggestions": ["1","2","3","4","5"], "category": "astrology"},
		{"id": 1, "text": "c", "createdAt": "2026-10-01T00:00:00.000Z", "suggestions": ["1","2","3","4","5"], "category": "art"}
	]`
	list, err := Decode([]byte(raw))
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, models.CategoryGeneral, list[0].Category)
	assert.Equal(t, models.CategoryGeneral, list[1].Category)
	assert.Equal(t, models.CategoryArt, list[2].Category)
}

func TestDecode_DuplicateIDsKeepNewest(t *testing.T) {
	raw := `[
		{"id": 7, "text": "newer", "createdAt": "", "suggestions": ["1","2","3","4","5"]},
		{"id": 7, "text": "older", "createdAt": "", "suggestions": ["1","2","3","4","5"]}
	]`
	list, err := Decode([]byte(raw))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "newer", list[0].Text)
}

func TestDecode_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":          `[`,
		"object":            `{}`,
		"null":              `null`,
		"zero id":           `[{"id":0,"text":"a","suggestions":["1","2","3","4","5"]}]`,
		"empty text":        `[{"id":1,"text":"","suggestions":["1","2","3","4","5"]}]`,
		"four suggestions":  `[{"id":1,"text":"a","suggestions":["1","2","3","4"]}]`,
		"wrong field types": `[{"id":"1","text":"a","suggestions":["1","2","3","4","5"]}]`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(raw))
			assert.ErrorIs(t, err, errMalformed)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	list, err := Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIDGenerator_StrictlyIncreasing(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	g := NewIDGenerator(func() time.Time { return fixed })

	seen := make(map[int64]struct{})
	var prev int64
	for i := 0; i < 100; i++ {
		id := g.Next()
		assert.Greater(t, id, prev)
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
		prev = id
	}
	assert.Equal(t, fixed.UnixMilli(), prev-99)
}

func TestIDGenerator_ObserveSkipsPastHistory(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	g := NewIDGenerator(func() time.Time { return fixed })

	future := fixed.UnixMilli() + 5000
	g.Observe(models.HistoryList{testRecord(future, "x")})
	assert.Equal(t, future+1, g.Next())
}

func TestIDGenerator_TracksClock(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	g := NewIDGenerator(func() time.Time { return now })
	first := g.Next()
	now = now.Add(time.Second)
	assert.Equal(t, first+1000, g.Next())
}

func TestParseWindow(t *testing.T) {
	for _, s := range []string{"", "all", "today", "week", "month"} {
		_, err := ParseWindow(s)
		assert.NoError(t, err, s)
	}
	w, _ := ParseWindow("")
	assert.Equal(t, WindowAll, w)

	_, err := ParseWindow("year")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	at := func(id int64, text string, age time.Duration, c models.Category) models.PromptRecord {
		r := testRecord(id, text)
		r.CreatedAt = models.FormatTimestamp(now.Add(-age))
		r.Category = c
		return r
	}
	list := models.HistoryList{
		at(5, "Python basics", time.Hour, models.CategoryEducation),
		at(4, "watercolor", 3*24*time.Hour, models.CategoryArt),
		at(3, "coffee company", 10*24*time.Hour, models.CategoryBusiness),
		at(2, "old idea", 40*24*time.Hour, models.CategoryGeneral),
	}
	broken := testRecord(1, "broken date")
	broken.CreatedAt = "yesterday"
	list = append(list, broken)

	tests := []struct {
		name  string
		query Query
		want  []int64
	}{
		{name: "no filter", query: Query{}, want: []int64{5, 4, 3, 2, 1}},
		{name: "text in prompt", query: Query{Text: "PYTHON"}, want: []int64{5}},
		{name: "text in suggestion", query: Query{Text: "song lyric about old"}, want: []int64{2}},
		{name: "today", query: Query{Window: WindowToday}, want: []int64{5}},
		{name: "week", query: Query{Window: WindowWeek}, want: []int64{5, 4}},
		{name: "month", query: Query{Window: WindowMonth}, want: []int64{5, 4, 3}},
		{name: "all window keeps unparsable dates", query: Query{Window: WindowAll}, want: []int64{5, 4, 3, 2, 1}},
		{name: "category", query: Query{Category: models.CategoryArt}, want: []int64{4}},
		{name: "limit", query: Query{Limit: 2}, want: []int64{5, 4}},
		{name: "combined", query: Query{Text: "coffee", Window: WindowMonth}, want: []int64{3}},
		{name: "no match", query: Query{Text: "zebra"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(list, tt.query, now).IDs())
		})
	}
}

func TestStore_ManyRecords(t *testing.T) {
	store := NewStore(slot.NewMemory(), "")
	ctx := context.Background()

	var list models.HistoryList
	var err error
	for i := 1; i <= 50; i++ {
		list, err = store.Add(ctx, list, testRecord(int64(i), fmt.Sprintf("topic %d", i)))
		require.NoError(t, err)
	}

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 50)
	assert.Equal(t, int64(50), loaded[0].ID)
	assert.Equal(t, int64(1), loaded[49].ID)
}
