// Package editor implements the generic field editors behind the question
// authoring forms: scalar text, ordered word lists, option lists, image/text
// pair lists, image/item lists, and the media upload field.
//
// Every operation is computed against an immutable snapshot of the content
// record and emits a FieldPatch replacing exactly one field. Operations never
// return errors: anything that cannot be applied (index out of range,
// removing below a cardinality floor) degrades to "no mutation occurred" and
// is reported through the ok return.
package editor

import (
	"github.com/wordsteps/authoring-service/internal/models"
)

// cloneStrings copies a word list so the patch never aliases the snapshot.
func cloneStrings(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

func cloneOptions(src []models.Option) []models.Option {
	dst := make([]models.Option, len(src))
	copy(dst, src)
	return dst
}

func clonePairs(src []models.Pair) []models.Pair {
	dst := make([]models.Pair, len(src))
	copy(dst, src)
	return dst
}

func cloneItems(src []models.Item) []models.Item {
	dst := make([]models.Item, len(src))
	copy(dst, src)
	return dst
}

func removeAt[T any](src []T, index int) []T {
	dst := make([]T, 0, len(src)-1)
	dst = append(dst, src[:index]...)
	return append(dst, src[index+1:]...)
}
