package cleaner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estimator/internal/apperrors"
)

func TestReadCSV(t *testing.T) {
	in := "Price,district,rooms,floor,floors,area,type,cond,walls,desc,extra\n" +
		"50000,Kievsky,2,3,9,50,Czech,Renovation,Brick,Sauna,x\n" +
		"abc,,1\n"

	rows, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "50000", *rows[0].Price)
	assert.Equal(t, "Kievsky", *rows[0].District)
	assert.Equal(t, "Sauna", *rows[0].Description)

	assert.Equal(t, "abc", *rows[1].Price)
	assert.Nil(t, rows[1].District)
	assert.Equal(t, "1", *rows[1].Rooms)
	assert.Nil(t, rows[1].Walls)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = ReadCSV(strings.NewReader("district,rooms\nKievsky,2\n"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestReadCSV_FeedsSanitizer(t *testing.T) {
	in := "price,district,rooms,floor,floors,area,type,cond,walls\n" +
		"50000,Kievsky,2,3,9,50,Czech,Renovation,Brick\n" +
		"50000,Kievsky,2,3,9,50,Czech,Renovation,Brick\n" +
		"abc,Kievsky,2,3,9,50,Czech,Renovation,Brick\n"

	raw, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	rows, err := newTestSanitizer().Clean(raw)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
