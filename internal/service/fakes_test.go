package service_test

import (
	"context"
	"sync"
	"time"

	"rentalhub/internal/model"
	"rentalhub/internal/repository"
	"rentalhub/internal/service"

	"github.com/google/uuid"
)

// In-memory stand-ins for the gorm repositories. The ledger fake keeps the
// real ledger's defensive re-check so the service tests exercise the same
// semantics end to end.

type fakeCatalog struct {
	products map[uint]*model.Product
}

func (f *fakeCatalog) GetByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeLedger struct {
	mu           sync.Mutex
	catalog      *fakeCatalog
	reservations map[uuid.UUID]*model.Reservation
	items        map[uuid.UUID]*model.BoardItem
	order        []uuid.UUID
	failRelease  map[uuid.UUID]error
}

func newFakeLedger(catalog *fakeCatalog) *fakeLedger {
	return &fakeLedger{
		catalog:      catalog,
		reservations: make(map[uuid.UUID]*model.Reservation),
		items:        make(map[uuid.UUID]*model.BoardItem),
		failRelease:  make(map[uuid.UUID]error),
	}
}

func (f *fakeLedger) heldOverlapping(productID uint, from, until time.Time) []model.Reservation {
	var out []model.Reservation
	for _, id := range f.order {
		r := f.reservations[id]
		if r.ProductID == productID && r.Status == model.ReservationHeld &&
			model.DateRangesOverlap(r.ReservedFrom, r.ReservedUntil, from, until) {
			out = append(out, *r)
		}
	}
	return out
}

func (f *fakeLedger) CreateWithItem(ctx context.Context, item *model.BoardItem, reservation *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	product, err := f.catalog.GetByID(ctx, reservation.ProductID)
	if err != nil {
		return err
	}
	overlapping := f.heldOverlapping(reservation.ProductID, reservation.ReservedFrom, reservation.ReservedUntil)
	peak := model.PeakUsage(overlapping, reservation.ReservedFrom, reservation.ReservedUntil, nil)
	if peak+reservation.Quantity > product.Quantity {
		return repository.ErrInsufficientStock
	}

	itemCopy := *item
	resCopy := *reservation
	resCopy.Status = model.ReservationHeld
	f.items[itemCopy.ID] = &itemCopy
	f.reservations[resCopy.ID] = &resCopy
	f.order = append(f.order, resCopy.ID)
	return nil
}

func (f *fakeLedger) UpdateQuantity(ctx context.Context, reservationID uuid.UUID, newQuantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reservations[reservationID]
	if !ok || r.Status != model.ReservationHeld {
		return repository.ErrReservationNotFound
	}

	product, err := f.catalog.GetByID(ctx, r.ProductID)
	if err != nil {
		return err
	}
	overlapping := f.heldOverlapping(r.ProductID, r.ReservedFrom, r.ReservedUntil)
	peak := model.PeakUsage(overlapping, r.ReservedFrom, r.ReservedUntil, &r.ID)
	if peak+newQuantity > product.Quantity {
		return repository.ErrInsufficientStock
	}

	r.Quantity = newQuantity
	if item, ok := f.items[r.BoardItemID]; ok {
		item.Quantity = newQuantity
	}
	return nil
}

func (f *fakeLedger) Release(_ context.Context, reservationID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reservations[reservationID]
	if !ok {
		return repository.ErrReservationNotFound
	}
	r.Status = model.ReservationReleased
	return nil
}

func (f *fakeLedger) ReleaseByItem(_ context.Context, itemID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failRelease[itemID]; ok {
		delete(f.failRelease, itemID)
		return err
	}

	if _, ok := f.items[itemID]; !ok {
		return repository.ErrItemNotFound
	}
	for _, r := range f.reservations {
		if r.BoardItemID == itemID && r.Status == model.ReservationHeld {
			r.Status = model.ReservationReleased
		}
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeLedger) GetByItemID(_ context.Context, itemID uuid.UUID) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.reservations {
		if r.BoardItemID == itemID && r.Status == model.ReservationHeld {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrReservationNotFound
}

func (f *fakeLedger) ListActive(_ context.Context, productID uint, from, until time.Time) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.heldOverlapping(productID, from, until), nil
}

// BoardItemStore side of the fake

func (f *fakeLedger) GetByID(_ context.Context, id uuid.UUID) (*model.BoardItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeLedger) ListByBoard(_ context.Context, boardID uuid.UUID) ([]model.BoardItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.itemsOf(boardID), nil
}

func (f *fakeLedger) itemsOf(boardID uuid.UUID) []model.BoardItem {
	var out []model.BoardItem
	for _, id := range f.order {
		r := f.reservations[id]
		item, ok := f.items[r.BoardItemID]
		if ok && item.BoardID == boardID {
			out = append(out, *item)
		}
	}
	return out
}

func (f *fakeLedger) heldCount(productID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, r := range f.reservations {
		if r.ProductID == productID && r.Status == model.ReservationHeld {
			n++
		}
	}
	return n
}

type fakeBoards struct {
	mu     sync.Mutex
	boards map[uuid.UUID]*model.Board
	ledger *fakeLedger
}

func newFakeBoards(ledger *fakeLedger) *fakeBoards {
	return &fakeBoards{boards: make(map[uuid.UUID]*model.Board), ledger: ledger}
}

func (f *fakeBoards) Create(_ context.Context, board *model.Board) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *board
	f.boards[cp.ID] = &cp
	return nil
}

func (f *fakeBoards) GetByID(_ context.Context, id uuid.UUID) (*model.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.boards[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	cp.Items = f.ledger.itemsOf(id)
	return &cp, nil
}

func (f *fakeBoards) GetOwned(_ context.Context, ownerID uuid.UUID, status string) ([]model.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Board
	for _, b := range f.boards {
		if b.OwnerID == ownerID && (status == "" || b.Status == status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBoards) Update(_ context.Context, board *model.Board) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *board
	cp.Items = nil
	f.boards[cp.ID] = &cp
	return nil
}

func (f *fakeBoards) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.boards[id]; !ok {
		return repository.ErrBoardNotFound
	}
	delete(f.boards, id)
	return nil
}

type fixture struct {
	catalog *fakeCatalog
	ledger  *fakeLedger
	boards  *fakeBoards
	avail   *service.AvailabilityService
	svc     *service.BoardService
	ownerID uuid.UUID
}

// newFixture wires the engine over in-memory stores with product 59 at a
// total stock of 5.
func newFixture() *fixture {
	catalog := &fakeCatalog{products: map[uint]*model.Product{
		59: {ID: 59, Name: "Round banquet table", Quantity: 5},
	}}
	ledger := newFakeLedger(catalog)
	boards := newFakeBoards(ledger)
	avail := service.NewAvailabilityService(catalog, ledger)
	svc := service.NewBoardService(boards, ledger, ledger, avail, service.NewProductLocks())

	return &fixture{
		catalog: catalog,
		ledger:  ledger,
		boards:  boards,
		avail:   avail,
		svc:     svc,
		ownerID: uuid.New(),
	}
}

func (f *fixture) createBoard(from, until string) *model.Board {
	board, err := f.svc.CreateBoard(context.Background(), f.ownerID, service.CreateBoardParams{
		Name:        "Winter wedding",
		EventDate:   date("2024-12-25"),
		EventType:   "wedding",
		RentalStart: date(from),
		RentalEnd:   date(until),
	})
	if err != nil {
		panic(err)
	}
	return board
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
