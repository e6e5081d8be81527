package generator

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/phraseforge/internal/model"
)

// MissingError names the parts of speech left without candidates.
type MissingError struct {
	Parts        []model.PartOfSpeech
	MinFrequency uint32
}

func (err *MissingError) Error() string {
	names := make([]string, len(err.Parts))
	for i, pos := range err.Parts {
		names[i] = pos.String()
	}
	return fmt.Sprintf("no %s above frequency %d; lower --min-frequency", strings.Join(names, ", "), err.MinFrequency)
}

func (err *MissingError) Is(target error) bool {
	return target == ErrNoCandidates
}
