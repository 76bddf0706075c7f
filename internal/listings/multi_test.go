package listings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vehicle-valuator/internal/listings"
	"github.com/donaldgifford/vehicle-valuator/internal/listings/mocks"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

func TestMultiSource_FetchListings(t *testing.T) {
	t.Parallel()

	t.Run("concatenates in source order and tags", func(t *testing.T) {
		t.Parallel()

		a := mocks.NewMockSource(t)
		b := mocks.NewMockSource(t)
		a.EXPECT().FetchListings(mock.Anything, camry, "94103").
			Return([]domain.RawListing{{"price": 1.0}, {"price": 2.0}}, nil)
		b.EXPECT().FetchListings(mock.Anything, camry, "94103").
			Return([]domain.RawListing{{"price": 3.0}}, nil)

		m := listings.NewMultiSource(nil,
			listings.Named{Name: "cargurus", Source: a},
			listings.Named{Name: "carmax", Source: b},
		)
		got, err := m.FetchListings(context.Background(), camry, "94103")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, 1.0, got[0]["price"])
		assert.Equal(t, "cargurus", got[0]["source"])
		assert.Equal(t, 3.0, got[2]["price"])
		assert.Equal(t, "carmax", got[2]["source"])
	})

	t.Run("one failing source yields nothing", func(t *testing.T) {
		t.Parallel()

		a := mocks.NewMockSource(t)
		b := mocks.NewMockSource(t)
		a.EXPECT().FetchListings(mock.Anything, camry, "94103").Return(nil, errors.New("boom"))
		b.EXPECT().FetchListings(mock.Anything, camry, "94103").
			Return([]domain.RawListing{{"price": 3.0}}, nil)

		m := listings.NewMultiSource(nil,
			listings.Named{Name: "broken", Source: a},
			listings.Named{Name: "carmax", Source: b},
		)
		got, err := m.FetchListings(context.Background(), camry, "94103")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "carmax", got[0]["source"])
	})

	t.Run("all sources failing is an error", func(t *testing.T) {
		t.Parallel()

		a := mocks.NewMockSource(t)
		a.EXPECT().FetchListings(mock.Anything, camry, "94103").Return(nil, errors.New("boom"))

		m := listings.NewMultiSource(nil, listings.Named{Name: "broken", Source: a})
		_, err := m.FetchListings(context.Background(), camry, "94103")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("no sources is empty", func(t *testing.T) {
		t.Parallel()

		got, err := listings.NewMultiSource(nil).FetchListings(context.Background(), camry, "94103")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
