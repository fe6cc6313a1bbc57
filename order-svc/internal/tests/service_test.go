package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableside/order-svc/internal/domain"
	"tableside/order-svc/internal/mocks"
	"tableside/order-svc/internal/notifier"
	"tableside/order-svc/internal/service"
	"tableside/order-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	burger = domain.MenuItem{ID: 10, RestaurantID: 1, Name: "Burger", Price: 120, IsAvailable: true}
	fries  = domain.MenuItem{ID: 11, RestaurantID: 1, Name: "Fries", Price: 40, IsAvailable: true}
	soup   = domain.MenuItem{ID: 12, RestaurantID: 1, Name: "Soup", Price: 90, IsAvailable: false}
	pasta  = domain.MenuItem{ID: 30, RestaurantID: 2, Name: "Pasta", Price: 150, IsAvailable: true}

	table5 = &domain.RestaurantTable{ID: 3, RestaurantID: 1, TableNumber: 5, IsActive: true}
)

func burgerAndFries() []domain.OrderLine {
	return []domain.OrderLine{
		{MenuItemID: 10, Quantity: 2},
		{MenuItemID: 11, Quantity: 2, Note: "extra salt"},
	}
}

func TestCatalogService_FetchMenu(t *testing.T) {
	cached := &domain.Menu{RestaurantID: 1, Items: []domain.MenuItem{burger}}

	tests := []struct {
		name      string
		setupMock func(*mocks.CatalogRepository, *mocks.MenuCache)
		wantErr   error
		wantItems int
	}{
		{
			name: "cache hit skips database",
			setupMock: func(repo *mocks.CatalogRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything, 1).Return(cached, true, nil).Once()
			},
			wantItems: 1,
		},
		{
			name: "cache miss loads and stores",
			setupMock: func(repo *mocks.CatalogRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything, 1).Return(nil, false, nil).Once()
				repo.On("GetRestaurant", mock.Anything, 1).Return(&domain.Restaurant{ID: 1, Name: "Diner"}, nil).Once()
				repo.On("ListCategories", mock.Anything, 1).Return([]domain.MenuCategory{{ID: 1, RestaurantID: 1, Name: "Mains"}}, nil).Once()
				repo.On("ListAvailableItems", mock.Anything, 1).Return([]domain.MenuItem{burger, fries}, nil).Once()
				cache.On("SetMenu", mock.Anything, mock.MatchedBy(func(m *domain.Menu) bool {
					return m.RestaurantID == 1 && len(m.Items) == 2
				})).Return(nil).Once()
			},
			wantItems: 2,
		},
		{
			name: "broken cache falls through",
			setupMock: func(repo *mocks.CatalogRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything, 1).Return(nil, false, errors.New("connection refused")).Once()
				repo.On("GetRestaurant", mock.Anything, 1).Return(&domain.Restaurant{ID: 1}, nil).Once()
				repo.On("ListCategories", mock.Anything, 1).Return(nil, nil).Once()
				repo.On("ListAvailableItems", mock.Anything, 1).Return([]domain.MenuItem{fries}, nil).Once()
				cache.On("SetMenu", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
			},
			wantItems: 1,
		},
		{
			name: "unknown restaurant",
			setupMock: func(repo *mocks.CatalogRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything, 1).Return(nil, false, nil).Once()
				repo.On("GetRestaurant", mock.Anything, 1).Return(nil, domain.ErrRestaurantNotFound).Once()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "item query fails",
			setupMock: func(repo *mocks.CatalogRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything, 1).Return(nil, false, nil).Once()
				repo.On("GetRestaurant", mock.Anything, 1).Return(&domain.Restaurant{ID: 1}, nil).Once()
				repo.On("ListCategories", mock.Anything, 1).Return(nil, nil).Once()
				repo.On("ListAvailableItems", mock.Anything, 1).Return(nil, assert.AnError).Once()
			},
			wantErr: assert.AnError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCatalogRepository(t)
			cache := mocks.NewMenuCache(t)
			svc := service.NewCatalogService(repo, cache, nil)

			testCase.setupMock(repo, cache)

			menu, err := svc.FetchMenu(context.Background(), 1)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, menu)
				return
			}
			require.NoError(t, err)
			assert.Len(t, menu.Items, testCase.wantItems)
		})
	}
}

func TestOrderService_Submit(t *testing.T) {
	tests := []struct {
		name        string
		req         domain.SubmitOrderRequest
		setupMock   func(*mocks.OrderRepository, *mocks.StatusPublisher, *mocks.EventPublisher)
		wantErr     error
		wantLines   []domain.LineError
		wantTotal   int64
		wantWarning bool
		noCreate    bool
	}{
		{
			name: "two burgers and two fries",
			req:  domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 5, Lines: burgerAndFries(), CustomerName: "Ann"},
			setupMock: func(repo *mocks.OrderRepository, statuses *mocks.StatusPublisher, events *mocks.EventPublisher) {
				repo.On("ResolveTable", mock.Anything, 1, 5).Return(table5, nil).Once()
				repo.On("GetMenuItems", mock.Anything, []int{10, 11}).Return(map[int]domain.MenuItem{10: burger, 11: fries}, nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
					return o.TableID == 3 && o.TotalAmount == 320 && o.Status == domain.StatusReceived &&
						len(o.Items) == 2 && o.Items[0].ItemName == "Burger" && o.Items[0].ItemPrice == 120 &&
						o.Items[1].Note == "extra salt" && o.PaymentStatus == "pending"
				})).Run(func(args mock.Arguments) {
					order := args.Get(1).(*domain.Order)
					order.ID = 42
					order.Version = 1
				}).Return(nil).Once()
				statuses.On("PublishStatus", mock.Anything, mock.MatchedBy(func(ev domain.StatusEvent) bool {
					return ev.OrderID == 42 && ev.Status == domain.StatusReceived && ev.Version == 1
				})).Return(nil).Once()
				events.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(msg domain.KafkaMessage) bool {
					return msg.Type == domain.EventOrderPlaced && msg.OrderID == 42 && msg.TotalAmount == 320
				})).Return(nil).Once()
			},
			wantTotal: 320,
		},
		{
			name: "unknown table never creates an order",
			req:  domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 999, Lines: burgerAndFries()},
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.StatusPublisher, _ *mocks.EventPublisher) {
				repo.On("ResolveTable", mock.Anything, 1, 999).Return(nil, domain.ErrTableNotFound).Once()
			},
			wantErr:  domain.ErrNotFound,
			noCreate: true,
		},
		{
			name:    "empty cart",
			req:     domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 5},
			wantErr: domain.ErrValidation,
		},
		{
			name: "non-positive quantity",
			req: domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 5, Lines: []domain.OrderLine{
				{MenuItemID: 10, Quantity: 0},
			}},
			wantErr:   domain.ErrValidation,
			wantLines: []domain.LineError{{MenuItemID: 10, Reason: "quantity must be at least 1"}},
		},
		{
			name: "unavailable and foreign items rejected per line",
			req: domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 5, Lines: []domain.OrderLine{
				{MenuItemID: 10, Quantity: 1},
				{MenuItemID: 12, Quantity: 1},
				{MenuItemID: 30, Quantity: 1},
				{MenuItemID: 77, Quantity: 1},
			}},
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.StatusPublisher, _ *mocks.EventPublisher) {
				repo.On("ResolveTable", mock.Anything, 1, 5).Return(table5, nil).Once()
				repo.On("GetMenuItems", mock.Anything, []int{10, 12, 30, 77}).
					Return(map[int]domain.MenuItem{10: burger, 12: soup, 30: pasta}, nil).Once()
			},
			wantErr: domain.ErrValidation,
			wantLines: []domain.LineError{
				{MenuItemID: 12, Reason: "Soup is currently unavailable"},
				{MenuItemID: 30, Reason: "not on this restaurant's menu"},
				{MenuItemID: 77, Reason: "not on this restaurant's menu"},
			},
		},
		{
			name: "partial write still reports the order",
			req:  domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 5, Lines: burgerAndFries()},
			setupMock: func(repo *mocks.OrderRepository, statuses *mocks.StatusPublisher, events *mocks.EventPublisher) {
				repo.On("ResolveTable", mock.Anything, 1, 5).Return(table5, nil).Once()
				repo.On("GetMenuItems", mock.Anything, []int{10, 11}).Return(map[int]domain.MenuItem{10: burger, 11: fries}, nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.Anything).Return(func(_ context.Context, order *domain.Order) error {
					order.ID = 43
					order.Version = 1
					return &domain.PartialWriteError{Order: order, Written: 1, Err: errors.New("disk full")}
				}).Once()
				statuses.On("PublishStatus", mock.Anything, mock.Anything).Return(nil).Once()
				events.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantTotal:   320,
			wantWarning: true,
		},
		{
			name: "database failure",
			req:  domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 5, Lines: burgerAndFries()},
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.StatusPublisher, _ *mocks.EventPublisher) {
				repo.On("ResolveTable", mock.Anything, 1, 5).Return(table5, nil).Once()
				repo.On("GetMenuItems", mock.Anything, []int{10, 11}).Return(map[int]domain.MenuItem{10: burger, 11: fries}, nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.Anything).Return(assert.AnError).Once()
			},
			wantErr: assert.AnError,
		},
		{
			name: "notification failures do not fail the order",
			req:  domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 5, Lines: burgerAndFries()[:1]},
			setupMock: func(repo *mocks.OrderRepository, statuses *mocks.StatusPublisher, events *mocks.EventPublisher) {
				repo.On("ResolveTable", mock.Anything, 1, 5).Return(table5, nil).Once()
				repo.On("GetMenuItems", mock.Anything, []int{10}).Return(map[int]domain.MenuItem{10: burger}, nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
				statuses.On("PublishStatus", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
				events.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(errors.New("kafka down")).Once()
			},
			wantTotal: 240,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			statuses := mocks.NewStatusPublisher(t)
			events := mocks.NewEventPublisher(t)
			svc := service.NewOrderService(repo, statuses, nil, events, nil, nil)

			if testCase.setupMock != nil {
				testCase.setupMock(repo, statuses, events)
			}

			result, err := svc.Submit(context.Background(), testCase.req)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, result)
				if testCase.noCreate {
					repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
				}
				if testCase.wantLines != nil {
					var validation *domain.ValidationError
					require.ErrorAs(t, err, &validation)
					assert.Equal(t, testCase.wantLines, validation.Lines)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantTotal, result.Total)
			assert.Equal(t, domain.StatusReceived, result.Status)
			if testCase.wantWarning {
				assert.Equal(t, domain.ErrPartialWrite.Error(), result.Warning)
			} else {
				assert.Empty(t, result.Warning)
			}
		})
	}
}

func TestOrderService_Advance(t *testing.T) {
	order := func(status domain.OrderStatus, version int) *domain.Order {
		return &domain.Order{ID: 7, RestaurantID: 1, TableNumber: 5, Status: status, Version: version}
	}

	tests := []struct {
		name       string
		target     domain.OrderStatus
		setupMock  func(*mocks.OrderRepository, *mocks.StatusPublisher, *mocks.EventPublisher)
		wantErr    error
		wantStatus domain.OrderStatus
	}{
		{
			name:   "forward step publishes",
			target: domain.StatusPreparing,
			setupMock: func(repo *mocks.OrderRepository, statuses *mocks.StatusPublisher, events *mocks.EventPublisher) {
				repo.On("GetOrder", mock.Anything, 7).Return(order(domain.StatusReceived, 1), nil).Once()
				repo.On("UpdateOrderStatus", mock.Anything, 7, domain.StatusReceived, domain.StatusPreparing).
					Return(order(domain.StatusPreparing, 2), true, nil).Once()
				statuses.On("PublishStatus", mock.Anything, mock.MatchedBy(func(ev domain.StatusEvent) bool {
					return ev.Status == domain.StatusPreparing && ev.Version == 2
				})).Return(nil).Once()
				events.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(msg domain.KafkaMessage) bool {
					return msg.Type == domain.EventStatusChanged && msg.Status == domain.StatusPreparing
				})).Return(nil).Once()
			},
			wantStatus: domain.StatusPreparing,
		},
		{
			name:   "cancel from ready",
			target: domain.StatusCancelled,
			setupMock: func(repo *mocks.OrderRepository, statuses *mocks.StatusPublisher, events *mocks.EventPublisher) {
				repo.On("GetOrder", mock.Anything, 7).Return(order(domain.StatusReady, 3), nil).Once()
				repo.On("UpdateOrderStatus", mock.Anything, 7, domain.StatusReady, domain.StatusCancelled).
					Return(order(domain.StatusCancelled, 4), true, nil).Once()
				statuses.On("PublishStatus", mock.Anything, mock.Anything).Return(nil).Once()
				events.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantStatus: domain.StatusCancelled,
		},
		{
			name:   "skipping a step is rejected",
			target: domain.StatusServed,
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.StatusPublisher, _ *mocks.EventPublisher) {
				repo.On("GetOrder", mock.Anything, 7).Return(order(domain.StatusReceived, 1), nil).Once()
			},
			wantErr: domain.ErrTransitionRejected,
		},
		{
			name:   "terminal orders stay put",
			target: domain.StatusCancelled,
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.StatusPublisher, _ *mocks.EventPublisher) {
				repo.On("GetOrder", mock.Anything, 7).Return(order(domain.StatusServed, 4), nil).Once()
			},
			wantErr: domain.ErrTransitionRejected,
		},
		{
			name:   "same status is a no-op",
			target: domain.StatusReady,
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.StatusPublisher, _ *mocks.EventPublisher) {
				repo.On("GetOrder", mock.Anything, 7).Return(order(domain.StatusReady, 3), nil).Once()
				repo.On("TouchOrder", mock.Anything, 7, domain.StatusReady).Return(order(domain.StatusReady, 3), true, nil).Once()
			},
			wantStatus: domain.StatusReady,
		},
		{
			name:   "lost race re-evaluates against the winner",
			target: domain.StatusReady,
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.StatusPublisher, _ *mocks.EventPublisher) {
				repo.On("GetOrder", mock.Anything, 7).Return(order(domain.StatusPreparing, 2), nil).Once()
				repo.On("UpdateOrderStatus", mock.Anything, 7, domain.StatusPreparing, domain.StatusReady).
					Return(nil, false, nil).Once()
				repo.On("GetOrder", mock.Anything, 7).Return(order(domain.StatusReady, 3), nil).Once()
				repo.On("TouchOrder", mock.Anything, 7, domain.StatusReady).Return(order(domain.StatusReady, 3), true, nil).Once()
			},
			wantStatus: domain.StatusReady,
		},
		{
			name:   "re-applying a closed status leaves it untouched",
			target: domain.StatusServed,
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.StatusPublisher, _ *mocks.EventPublisher) {
				repo.On("GetOrder", mock.Anything, 7).Return(order(domain.StatusServed, 4), nil).Once()
			},
			wantStatus: domain.StatusServed,
		},
		{
			name:   "order keeps moving underneath",
			target: domain.StatusCancelled,
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.StatusPublisher, _ *mocks.EventPublisher) {
				repo.On("GetOrder", mock.Anything, 7).Return(order(domain.StatusReceived, 1), nil).Once()
				repo.On("UpdateOrderStatus", mock.Anything, 7, domain.StatusReceived, domain.StatusCancelled).
					Return(nil, false, nil).Once()
				repo.On("GetOrder", mock.Anything, 7).Return(order(domain.StatusPreparing, 2), nil).Once()
				repo.On("UpdateOrderStatus", mock.Anything, 7, domain.StatusPreparing, domain.StatusCancelled).
					Return(nil, false, nil).Once()
				repo.On("GetOrder", mock.Anything, 7).Return(order(domain.StatusReady, 3), nil).Once()
			},
			wantErr: domain.ErrTransitionRejected,
		},
		{
			name:   "unknown order",
			target: domain.StatusPreparing,
			setupMock: func(repo *mocks.OrderRepository, _ *mocks.StatusPublisher, _ *mocks.EventPublisher) {
				repo.On("GetOrder", mock.Anything, 7).Return(nil, domain.ErrOrderNotFound).Once()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unknown status",
			target:  domain.OrderStatus("eaten"),
			wantErr: domain.ErrValidation,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			statuses := mocks.NewStatusPublisher(t)
			events := mocks.NewEventPublisher(t)
			svc := service.NewOrderService(repo, statuses, nil, events, nil, nil)

			if testCase.setupMock != nil {
				testCase.setupMock(repo, statuses, events)
			}

			result, err := svc.Advance(context.Background(), 7, testCase.target)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantStatus, result.Status)
		})
	}
}

// unreachableBroker never acknowledges a write.
type unreachableBroker struct{}

func (unreachableBroker) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestOrderService_StalledEventStreamDoesNotHoldRequests(t *testing.T) {
	repo := newMemRepo(burger, fries)
	repo.addTable(1, 5)

	events := storage.NewKafkaPublisher(unreachableBroker{}, 50*time.Millisecond)
	svc := service.NewOrderService(repo, nil, nil, events, nil, nil)

	requestCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	placed, err := svc.Submit(requestCtx, domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 5, Lines: burgerAndFries()})
	require.NoError(t, err)
	assert.Empty(t, placed.Warning)
	assert.Less(t, time.Since(start), time.Second)

	start = time.Now()
	updated, err := svc.Advance(requestCtx, placed.OrderID, domain.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, updated.Status)
	assert.Less(t, time.Since(start), time.Second)
}

func TestOrderService_ContendedAdvanceReportsLatestState(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	svc := service.NewOrderService(repo, nil, nil, nil, nil, nil)

	repo.On("GetOrder", mock.Anything, 7).Return(&domain.Order{ID: 7, Status: domain.StatusPreparing, Version: 2}, nil).Once()
	repo.On("UpdateOrderStatus", mock.Anything, 7, domain.StatusPreparing, domain.StatusReady).Return(nil, false, nil).Once()
	repo.On("GetOrder", mock.Anything, 7).Return(&domain.Order{ID: 7, Status: domain.StatusPreparing, Version: 3}, nil).Once()
	repo.On("UpdateOrderStatus", mock.Anything, 7, domain.StatusPreparing, domain.StatusReady).Return(nil, false, nil).Once()
	repo.On("GetOrder", mock.Anything, 7).Return(&domain.Order{ID: 7, Status: domain.StatusCancelled, Version: 4}, nil).Once()

	_, err := svc.Advance(context.Background(), 7, domain.StatusReady)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.StatusCancelled, conflict.Current)
	assert.Equal(t, domain.StatusReady, conflict.To)
	assert.Contains(t, err.Error(), "now cancelled")
}

func TestBoardService_ReapplyingServedKeepsHistoryOrder(t *testing.T) {
	repo := newMemRepo(burger, fries)
	repo.addTable(1, 5)

	orders := service.NewOrderService(repo, nil, nil, nil, nil, nil)
	board := service.NewBoardService(repo, 0)
	ctx := context.Background()

	var ids []int
	for i := 0; i < 2; i++ {
		placed, err := orders.Submit(ctx, domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 5, Lines: burgerAndFries()})
		require.NoError(t, err)
		for _, next := range []domain.OrderStatus{domain.StatusPreparing, domain.StatusReady, domain.StatusServed} {
			_, err := orders.Advance(ctx, placed.OrderID, next)
			require.NoError(t, err)
		}
		ids = append(ids, placed.OrderID)
	}

	before, err := orders.Get(ctx, ids[0])
	require.NoError(t, err)

	again, err := orders.Advance(ctx, ids[0], domain.StatusServed)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, again.UpdatedAt)
	assert.Equal(t, before.Version, again.Version)

	history, err := board.ListHistory(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, ids[1], history[0].ID)
	assert.Equal(t, ids[0], history[1].ID)
}

func TestOrderService_ConcurrentReadyBothSucceed(t *testing.T) {
	repo := newMemRepo(burger, fries)
	repo.addTable(1, 5)

	hub := notifier.NewHub(nil)
	defer hub.Close()
	svc := service.NewOrderService(repo, hub, hub, nil, nil, nil)
	ctx := context.Background()

	placed, err := svc.Submit(ctx, domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 5, Lines: burgerAndFries()})
	require.NoError(t, err)
	_, err = svc.Advance(ctx, placed.OrderID, domain.StatusPreparing)
	require.NoError(t, err)

	var (
		mu      sync.Mutex
		changes []domain.StatusEvent
	)
	_, unsubscribe, err := svc.Subscribe(ctx, placed.OrderID, func(ev domain.StatusEvent) {
		mu.Lock()
		changes = append(changes, ev)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer unsubscribe()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Advance(ctx, placed.OrderID, domain.StatusReady)
		}(i)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])

	order, err := svc.Get(ctx, placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, order.Status)
	assert.Equal(t, 3, order.Version)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changes) == 1
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Equal(t, domain.StatusReady, changes[0].Status)
	mu.Unlock()
}

func TestOrderLifecycle_FromTableToHistory(t *testing.T) {
	repo := newMemRepo(burger, fries)
	repo.addTable(1, 5)

	hub := notifier.NewHub(nil)
	defer hub.Close()
	orders := service.NewOrderService(repo, hub, hub, nil, nil, nil)
	board := service.NewBoardService(repo, 0)
	ctx := context.Background()

	placed, err := orders.Submit(ctx, domain.SubmitOrderRequest{RestaurantID: 1, TableNumber: 5, Lines: burgerAndFries()})
	require.NoError(t, err)
	assert.Equal(t, int64(320), placed.Total)

	current, unsubscribe, err := orders.Subscribe(ctx, placed.OrderID, func(domain.StatusEvent) {})
	require.NoError(t, err)
	unsubscribe()
	assert.Equal(t, domain.StatusReceived, current.Status)
	assert.Len(t, current.Items, 2)

	active, err := board.ListActive(ctx, 1)
	require.NoError(t, err)
	require.Len(t, active, 1)

	for _, next := range []domain.OrderStatus{domain.StatusPreparing, domain.StatusReady, domain.StatusServed} {
		updated, err := orders.Advance(ctx, placed.OrderID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	active, err = board.ListActive(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, active)

	history, err := board.ListHistory(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.StatusServed, history[0].Status)
	assert.Equal(t, 4, history[0].Version)
	assert.Equal(t, int64(320), history[0].TotalAmount)

	_, err = orders.Advance(ctx, placed.OrderID, domain.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrTransitionRejected)
}

func TestBoardService_ListHistoryClampsLimit(t *testing.T) {
	tests := []struct {
		name       string
		configured int
		requested  int
		wantLimit  int
	}{
		{name: "default", configured: 0, requested: 0, wantLimit: service.DefaultHistoryLimit},
		{name: "configured default", configured: 20, requested: 0, wantLimit: 20},
		{name: "explicit", configured: 20, requested: 5, wantLimit: 5},
		{name: "negative", configured: 20, requested: -3, wantLimit: 20},
		{name: "above maximum", configured: 20, requested: 500, wantLimit: service.MaxHistoryLimit},
		{name: "configured above maximum", configured: 1000, requested: 0, wantLimit: service.MaxHistoryLimit},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewBoardRepository(t)
			svc := service.NewBoardService(repo, testCase.configured)

			repo.On("ListTerminalOrders", mock.Anything, 1, testCase.wantLimit).Return([]domain.Order{}, nil).Once()

			_, err := svc.ListHistory(context.Background(), 1, testCase.requested)
			assert.NoError(t, err)
		})
	}
}

func TestBoardService_Board(t *testing.T) {
	repo := mocks.NewBoardRepository(t)
	svc := service.NewBoardService(repo, 10)

	repo.On("ListActiveOrders", mock.Anything, 1).Return([]domain.Order{
		{ID: 1, Status: domain.StatusReceived},
		{ID: 2, Status: domain.StatusReady},
	}, nil).Once()
	repo.On("ListTerminalOrders", mock.Anything, 1, 10).Return([]domain.Order{{ID: 3, Status: domain.StatusServed}}, nil).Once()

	board, err := svc.Board(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, board.Active, 2)
	require.Len(t, board.History, 1)

	require.NotNil(t, board.Active[0].NextStatus)
	assert.Equal(t, domain.StatusPreparing, *board.Active[0].NextStatus)
	assert.True(t, board.Active[0].CanCancel)
	require.NotNil(t, board.Active[1].NextStatus)
	assert.Equal(t, domain.StatusServed, *board.Active[1].NextStatus)

	card := service.Card(domain.Order{Status: domain.StatusCancelled})
	assert.Nil(t, card.NextStatus)
	assert.False(t, card.CanCancel)
}

func TestBoardService_BoardPropagatesErrors(t *testing.T) {
	repo := mocks.NewBoardRepository(t)
	svc := service.NewBoardService(repo, 10)

	repo.On("ListActiveOrders", mock.Anything, 1).Return(nil, assert.AnError).Once()

	board, err := svc.Board(context.Background(), 1)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, board)
}
