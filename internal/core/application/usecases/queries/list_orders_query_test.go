package queries_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery_ValidInput(t *testing.T) {
	memberID := kernel.NewUUID()
	status := order.Ordered
	filter := ports.OrderFilter{MemberName: "kim", MemberID: &memberID, Status: &status, Sort: ports.SortByOrderDateDesc}
	page := &ports.Page{Offset: 10, Limit: 5}

	q, err := queries.NewListOrdersQuery(filter, queries.TwoQuery, page)

	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.Equal(t, filter, q.Filter())
	assert.Equal(t, queries.TwoQuery, q.Strategy())
	assert.Equal(t, page, q.Page())
	assert.NotSame(t, page, q.Page())
}

func TestNewListOrdersQuery_RejectsPaginationWhereUnsupported(t *testing.T) {
	for _, strategy := range []queries.Strategy{queries.JoinFetch, queries.Flat} {
		t.Run(strategy.String(), func(t *testing.T) {
			_, err := queries.NewListOrdersQuery(ports.OrderFilter{}, strategy, &ports.Page{Limit: 10})

			var usageErr *errs.LoaderUsageError
			require.ErrorAs(t, err, &usageErr)
			assert.True(t, errors.Is(err, errs.ErrLoaderUsage))
		})
	}

	_, err := queries.NewListOrdersQuery(ports.OrderFilter{}, queries.Flat, nil)
	require.NoError(t, err)
}

func TestNewListOrdersQuery_InvalidPage(t *testing.T) {
	_, err := queries.NewListOrdersQuery(ports.OrderFilter{}, queries.Batched, &ports.Page{Offset: -1, Limit: 10})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewListOrdersQuery(ports.OrderFilter{}, queries.Batched, &ports.Page{Limit: 0})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewListOrdersQuery(ports.OrderFilter{}, queries.Batched, &ports.Page{Limit: queries.MaxPageLimit + 1})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewListOrdersQuery_InvalidFilter(t *testing.T) {
	_, err := queries.NewListOrdersQuery(ports.OrderFilter{Sort: ports.OrderSort(7)}, queries.Batched, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListOrdersQuery(ports.OrderFilter{}, queries.UnknownStrategy, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestListOrdersQuery_NotConstructed(t *testing.T) {
	q := queries.ListOrdersQuery{}
	assert.ErrorIs(t, q.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
}
