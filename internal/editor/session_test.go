package editor

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordsteps/authoring-service/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubUploader resolves every upload to the configured url/err pair. A gate
// channel, when set, blocks completion until the test releases it.
type stubUploader struct {
	url  string
	err  error
	gate chan struct{}

	mu    sync.Mutex
	calls int
}

func (u *stubUploader) Upload(ctx context.Context, file File, kind models.MediaKind, progress func(int)) (string, error) {
	u.mu.Lock()
	u.calls++
	u.mu.Unlock()
	if progress != nil {
		progress(50)
	}
	if u.gate != nil {
		<-u.gate
	}
	return u.url, u.err
}

func (u *stubUploader) callCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

// patchRecorder counts the patches a session emits.
type patchRecorder struct {
	mu      sync.Mutex
	patches []models.FieldPatch
}

func (r *patchRecorder) record(patch models.FieldPatch, _ models.ContentRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches = append(r.patches, patch)
}

func (r *patchRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.patches)
}

func TestSession_UnknownTagIsInert(t *testing.T) {
	record := models.ContentRecord{"text": "hello", "mystery": []any{"x"}}
	sess := NewSession("s1", "mcq_tripple", record, &stubUploader{url: "u.png"}, testLogger())

	assert.False(t, sess.Known())

	_, ok := sess.Apply(Operation{Field: "text", Op: OpSet, Value: "changed"})
	assert.False(t, ok)

	_, accepted := sess.StartUpload(context.Background(), ScalarPath("imageUrl"), File{Name: "a.png"})
	assert.False(t, accepted)

	// The record passes through byte for byte.
	assert.Equal(t, record, sess.Record())
}

func TestSession_ApplyTextAndOptions(t *testing.T) {
	sess := NewSession("s1", models.MCQSingle, nil, nil, testLogger())

	_, ok := sess.Apply(Operation{Field: "text", Op: OpSet, Value: "Pick one"})
	require.True(t, ok)

	_, ok = sess.Apply(Operation{Field: "options", Op: OpAppend})
	require.True(t, ok)
	_, ok = sess.Apply(Operation{Field: "options", Op: OpUpdate, Index: 0, Attr: "text", Value: "cat"})
	require.True(t, ok)
	_, ok = sess.Apply(Operation{Field: "options", Op: OpUpdate, Index: 0, Attr: "isCorrect", Value: true})
	require.True(t, ok)

	record := sess.Record()
	assert.Equal(t, "Pick one", record.Text("text"))
	assert.Equal(t, []models.Option{{Text: "cat", IsCorrect: true}}, record.Options("options"))
}

func TestSession_RefusesFieldOutsideComposition(t *testing.T) {
	sess := NewSession("s1", models.FreeText, models.ContentRecord{"text": "t"}, nil, testLogger())

	_, ok := sess.Apply(Operation{Field: "options", Op: OpAppend})
	assert.False(t, ok)

	_, ok = sess.Apply(Operation{Field: "pairs", Op: OpAppend})
	assert.False(t, ok)

	assert.Equal(t, models.ContentRecord{"text": "t"}, sess.Record())
}

func TestSession_RefusesWrongValueType(t *testing.T) {
	sess := NewSession("s1", models.MCQSingle, nil, nil, testLogger())

	_, ok := sess.Apply(Operation{Field: "text", Op: OpSet, Value: 42})
	assert.False(t, ok)

	sess.Apply(Operation{Field: "options", Op: OpAppend})
	_, ok = sess.Apply(Operation{Field: "options", Op: OpUpdate, Index: 0, Attr: "isCorrect", Value: "yes"})
	assert.False(t, ok)
}

func TestSession_MediaSetAndClear(t *testing.T) {
	sess := NewSession("s1", models.DrawCircleSingle, nil, nil, testLogger())

	_, ok := sess.Apply(Operation{Field: "imageUrl", Op: OpSet, Value: "uploads/x.png"})
	require.True(t, ok)
	assert.Equal(t, "uploads/x.png", sess.Record().Text("imageUrl"))

	_, ok = sess.Apply(Operation{Field: "imageUrl", Op: OpClear})
	require.True(t, ok)
	assert.Equal(t, "", sess.Record().Text("imageUrl"))
}

func TestSession_PairFloor(t *testing.T) {
	record := models.ContentRecord{"pairs": []models.Pair{{Text: "a"}, {Text: "b"}}}
	sess := NewSession("s1", models.MatchImageText, record, nil, testLogger())

	assert.False(t, sess.CanRemove("pairs"))

	_, ok := sess.Apply(Operation{Field: "pairs", Op: OpRemove, Index: 0})
	assert.False(t, ok)
	assert.Len(t, sess.Record().Pairs("pairs"), 2)

	sess.Apply(Operation{Field: "pairs", Op: OpAppend})
	assert.True(t, sess.CanRemove("pairs"))
}

func TestSession_UploadSuccessEmitsExactlyOnePatch(t *testing.T) {
	uploader := &stubUploader{url: "u.png"}
	sess := NewSession("s1", models.ListenRepeat, nil, uploader, testLogger())

	recorder := &patchRecorder{}
	sess.OnPatch(recorder.record)

	done, accepted := sess.StartUpload(context.Background(), ScalarPath("audioUrl"), File{Name: "a.mp3"})
	require.True(t, accepted)
	<-done

	assert.Equal(t, 1, recorder.count())
	assert.Equal(t, "u.png", sess.Record().Text("audioUrl"))
	assert.Empty(t, sess.UploadStates(), "state cleared after completion")
}

func TestSession_UploadFailureLeavesFieldUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		uploader *stubUploader
	}{
		{"collaborator error", &stubUploader{err: assert.AnError}},
		{"empty url", &stubUploader{url: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := models.ContentRecord{"audioUrl": "old.mp3"}
			sess := NewSession("s1", models.ListenRepeat, record, tt.uploader, testLogger())

			recorder := &patchRecorder{}
			sess.OnPatch(recorder.record)

			done, accepted := sess.StartUpload(context.Background(), ScalarPath("audioUrl"), File{Name: "a.mp3"})
			require.True(t, accepted)
			<-done

			assert.Equal(t, 0, recorder.count())
			assert.Equal(t, "old.mp3", sess.Record().Text("audioUrl"))
			assert.Empty(t, sess.UploadStates())
		})
	}
}

func TestSession_UploadRefusedForUnwiredPaths(t *testing.T) {
	uploader := &stubUploader{url: "u.png"}
	sess := NewSession("s1", models.MCQSingle, nil, uploader, testLogger())

	// No media slot anywhere in this composition.
	_, accepted := sess.StartUpload(context.Background(), ScalarPath("text"), File{})
	assert.False(t, accepted)
	_, accepted = sess.StartUpload(context.Background(), ScalarPath("imageUrl"), File{})
	assert.False(t, accepted)

	// A scalar media slot refuses element paths and vice versa.
	audio := NewSession("s2", models.ListenRepeat, nil, uploader, testLogger())
	_, accepted = audio.StartUpload(context.Background(), ElementPath("audioUrl", 0), File{})
	assert.False(t, accepted)

	match := NewSession("s3", models.MatchImageText, nil, uploader, testLogger())
	_, accepted = match.StartUpload(context.Background(), ScalarPath("pairs"), File{})
	assert.False(t, accepted)

	assert.Equal(t, 0, uploader.callCount())
}

func TestSession_UploadStateTracksProgressPerField(t *testing.T) {
	uploader := &stubUploader{url: "u.png", gate: make(chan struct{})}
	record := models.ContentRecord{"pairs": []models.Pair{{}, {}}}
	sess := NewSession("s1", models.MatchImageText, record, uploader, testLogger())

	done, accepted := sess.StartUpload(context.Background(), ElementPath("pairs", 1), File{Name: "b.png"})
	require.True(t, accepted)

	states := sess.UploadStates()
	require.Contains(t, states, "pairs[1]")
	assert.True(t, states["pairs[1]"].Busy)
	assert.Equal(t, 50, states["pairs[1]"].Progress)
	assert.NotContains(t, states, "pairs[0]", "sibling slot untouched")

	close(uploader.gate)
	<-done
	assert.Empty(t, sess.UploadStates())
}

func TestSession_ConcurrentUploadsMergeByFieldPath(t *testing.T) {
	uploader := &stubUploader{url: "u.png", gate: make(chan struct{})}
	record := models.ContentRecord{"pairs": []models.Pair{{Text: "a"}, {Text: "b"}}}
	sess := NewSession("s1", models.MatchImageText, record, uploader, testLogger())

	done0, accepted := sess.StartUpload(context.Background(), ElementPath("pairs", 0), File{Name: "a.png"})
	require.True(t, accepted)
	done1, accepted := sess.StartUpload(context.Background(), ElementPath("pairs", 1), File{Name: "b.png"})
	require.True(t, accepted)

	// Text edits keep flowing while both uploads are in flight.
	_, ok := sess.Apply(Operation{Field: "pairs", Op: OpUpdate, Index: 0, Attr: "text", Value: "ant"})
	require.True(t, ok)

	close(uploader.gate)
	<-done0
	<-done1

	pairs := sess.Record().Pairs("pairs")
	require.Len(t, pairs, 2)
	assert.Equal(t, models.Pair{Image: "u.png", Text: "ant"}, pairs[0])
	assert.Equal(t, models.Pair{Image: "u.png", Text: "b"}, pairs[1])
}

func TestSession_CompletionDroppedWhenElementRemoved(t *testing.T) {
	uploader := &stubUploader{url: "u.png", gate: make(chan struct{})}
	record := models.ContentRecord{"pairs": []models.Pair{{Text: "a"}, {Text: "b"}, {Text: "c"}}}
	sess := NewSession("s1", models.MatchImageText, record, uploader, testLogger())

	recorder := &patchRecorder{}
	sess.OnPatch(recorder.record)

	done, accepted := sess.StartUpload(context.Background(), ElementPath("pairs", 2), File{Name: "c.png"})
	require.True(t, accepted)

	_, ok := sess.Apply(Operation{Field: "pairs", Op: OpRemove, Index: 2})
	require.True(t, ok)

	close(uploader.gate)
	<-done

	pairs := sess.Record().Pairs("pairs")
	require.Len(t, pairs, 2)
	for _, p := range pairs {
		assert.Empty(t, p.Image, "orphaned completion must not land anywhere")
	}
	assert.Equal(t, 1, recorder.count(), "only the removal patched the record")
}

func TestSession_UploadWithoutUploaderRefused(t *testing.T) {
	sess := NewSession("s1", models.ListenRepeat, nil, nil, testLogger())

	_, accepted := sess.StartUpload(context.Background(), ScalarPath("audioUrl"), File{})
	assert.False(t, accepted)
}

func TestSession_OnPatchSeesResultingSnapshot(t *testing.T) {
	sess := NewSession("s1", models.FreeText, nil, nil, testLogger())

	var got models.ContentRecord
	doneCh := make(chan struct{}, 1)
	sess.OnPatch(func(_ models.FieldPatch, record models.ContentRecord) {
		got = record
		select {
		case doneCh <- struct{}{}:
		default:
		}
	})

	_, ok := sess.Apply(Operation{Field: "text", Op: OpSet, Value: "hello"})
	require.True(t, ok)

	select {
	case <-doneCh:
	case <-time.After(time.Second):
		t.Fatal("observer not called")
	}
	assert.Equal(t, "hello", got.Text("text"))
}
