package osm

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesKind(t *testing.T) {
	err := errors.Wrap(&Error{Kind: KindConfiguration, Value: "unclassified"}, "reducing")

	assert.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrIO)
	assert.Equal(t, `reducing: configuration error: "unclassified"`, err.Error())
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindStructural, Element: "bounds", Line: 2, Column: 5}, `structural error at line 2 column 5: unexpected element "bounds"`},
		{&Error{Kind: KindAttribute, Element: "way", Attr: "id", Err: errors.New("missing")}, `attribute error: element "way" attribute "id": missing`},
		{&Error{Kind: KindIO, Err: errors.New("no such file")}, `io error: no such file`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}
