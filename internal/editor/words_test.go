package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordsteps/authoring-service/internal/models"
)

func TestAppendWord(t *testing.T) {
	record := models.ContentRecord{"words": []string{"cat"}}

	patch, ok := AppendWord(record, "words")
	require.True(t, ok)
	assert.Equal(t, models.FieldPatch{Field: "words", Value: []string{"cat", ""}}, patch)

	assert.Equal(t, []string{"cat"}, record.Words("words"), "source record untouched")
}

func TestAppendWord_EmptyField(t *testing.T) {
	patch, ok := AppendWord(models.ContentRecord{}, "letters")
	require.True(t, ok)
	assert.Equal(t, []string{""}, patch.Value)
}

func TestUpdateWord(t *testing.T) {
	record := models.ContentRecord{"words": []string{"a", "b", "c"}}

	patch, ok := UpdateWord(record, "words", 1, "bee")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "bee", "c"}, patch.Value)
}

func TestUpdateWord_OnlyTargetChanges(t *testing.T) {
	record := models.ContentRecord{"words": []string{"a"}}

	appended, ok := AppendWord(record, "words")
	require.True(t, ok)
	record = appended.Apply(record)

	updated, ok := UpdateWord(record, "words", 1, "new")
	require.True(t, ok)
	record = updated.Apply(record)

	assert.Equal(t, []string{"a", "new"}, record.Words("words"))
}

func TestUpdateWord_Idempotent(t *testing.T) {
	record := models.ContentRecord{"words": []string{"a", "b"}}

	first, ok := UpdateWord(record, "words", 0, "x")
	require.True(t, ok)
	after := first.Apply(record)

	second, ok := UpdateWord(after, "words", 0, "x")
	require.True(t, ok)
	again := second.Apply(after)

	assert.Equal(t, after.Words("words"), again.Words("words"))
}

func TestUpdateWord_OutOfRange(t *testing.T) {
	record := models.ContentRecord{"words": []string{"a"}}

	_, ok := UpdateWord(record, "words", 1, "x")
	assert.False(t, ok)

	_, ok = UpdateWord(record, "words", -1, "x")
	assert.False(t, ok)
}

func TestRemoveWord(t *testing.T) {
	record := models.ContentRecord{"words": []string{"a", "b", "c"}}

	patch, ok := RemoveWord(record, "words", 1)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "c"}, patch.Value)
}

func TestRemoveWord_DownToEmpty(t *testing.T) {
	record := models.ContentRecord{"words": []string{"a"}}

	patch, ok := RemoveWord(record, "words", 0)
	require.True(t, ok)
	assert.Equal(t, []string{}, patch.Value)
}

func TestRemoveWord_OutOfRange(t *testing.T) {
	record := models.ContentRecord{"words": []string{"a"}}

	_, ok := RemoveWord(record, "words", 3)
	assert.False(t, ok)

	_, ok = RemoveWord(models.ContentRecord{}, "words", 0)
	assert.False(t, ok)
}

func TestSetText(t *testing.T) {
	patch, ok := SetText("text", "What is this?")
	require.True(t, ok)
	assert.Equal(t, models.FieldPatch{Field: "text", Value: "What is this?"}, patch)

	// Empty values pass through unchecked.
	patch, ok = SetText("word", "")
	require.True(t, ok)
	assert.Equal(t, "", patch.Value)
}
