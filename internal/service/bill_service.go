package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/metrics"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
	billsplitv1 "github.com/mmynk/billsplit/pkg/billsplitv1"
	"github.com/mmynk/billsplit/pkg/billsplitv1/billsplitv1connect"
)

// BillService implements the Connect BillService
type BillService struct {
	billsplitv1connect.UnimplementedBillServiceHandler
	store   storage.Store
	metrics *metrics.Metrics
}

// NewBillService creates a new BillService with the given storage backend.
// m may be nil when metrics are disabled.
func NewBillService(store storage.Store, m *metrics.Metrics) *BillService {
	return &BillService{store: store, metrics: m}
}

// CreateBill creates an empty bill.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[billsplitv1.CreateBillRequest]) (*connect.Response[billsplitv1.CreateBillResponse], error) {
	bill := &models.Bill{Title: strings.TrimSpace(req.Msg.Title)}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, toConnectError("CreateBill", err)
	}

	slog.Info("Bill created", "bill_id", bill.ID, "title", bill.Title)
	return connect.NewResponse(&billsplitv1.CreateBillResponse{Bill: billToWire(*bill)}), nil
}

// GetBill returns a bill with its roster and items.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[billsplitv1.GetBillRequest]) (*connect.Response[billsplitv1.GetBillResponse], error) {
	if req.Msg.BillID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, ErrMissingBillID)
	}

	bill, people, items, err := s.loadBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, toConnectError("GetBill", err)
	}

	return connect.NewResponse(&billsplitv1.GetBillResponse{
		Bill:   billToWire(*bill),
		People: peopleToWire(people),
		Items:  itemsToWire(items),
	}), nil
}

// ListBills returns every bill, oldest first.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[billsplitv1.ListBillsRequest]) (*connect.Response[billsplitv1.ListBillsResponse], error) {
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return nil, toConnectError("ListBills", err)
	}

	out := make([]billsplitv1.Bill, len(bills))
	for i, b := range bills {
		out[i] = billToWire(*b)
	}
	return connect.NewResponse(&billsplitv1.ListBillsResponse{Bills: out}), nil
}

// DeleteBill removes a bill with everything on it.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[billsplitv1.DeleteBillRequest]) (*connect.Response[billsplitv1.DeleteBillResponse], error) {
	if req.Msg.BillID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, ErrMissingBillID)
	}
	if err := s.store.DeleteBill(ctx, req.Msg.BillID); err != nil {
		return nil, toConnectError("DeleteBill", err)
	}

	slog.Info("Bill deleted", "bill_id", req.Msg.BillID)
	return connect.NewResponse(&billsplitv1.DeleteBillResponse{}), nil
}

// AddPerson adds someone to a bill's roster.
func (s *BillService) AddPerson(ctx context.Context, req *connect.Request[billsplitv1.AddPersonRequest]) (*connect.Response[billsplitv1.AddPersonResponse], error) {
	if req.Msg.BillID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, ErrMissingBillID)
	}
	name, err := ValidateName(req.Msg.Name)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	person := &models.Person{Name: name}
	if err := s.store.AddPerson(ctx, req.Msg.BillID, person); err != nil {
		return nil, toConnectError("AddPerson", err)
	}

	slog.Debug("Person added", "bill_id", req.Msg.BillID, "person_id", person.ID, "name", person.Name)
	return connect.NewResponse(&billsplitv1.AddPersonResponse{Person: personToWire(*person)}), nil
}

// RemovePerson removes someone from a bill. Items they paid for go with them.
func (s *BillService) RemovePerson(ctx context.Context, req *connect.Request[billsplitv1.RemovePersonRequest]) (*connect.Response[billsplitv1.RemovePersonResponse], error) {
	if req.Msg.BillID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, ErrMissingBillID)
	}
	if req.Msg.PersonID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, ErrMissingID)
	}

	removed, err := s.store.RemovePerson(ctx, req.Msg.BillID, req.Msg.PersonID)
	if err != nil {
		return nil, toConnectError("RemovePerson", err)
	}
	if removed == nil {
		removed = []string{}
	}

	slog.Debug("Person removed",
		"bill_id", req.Msg.BillID,
		"person_id", req.Msg.PersonID,
		"removed_items", len(removed),
	)
	return connect.NewResponse(&billsplitv1.RemovePersonResponse{RemovedItemIDs: removed}), nil
}

// AddItem records a purchase on a bill.
func (s *BillService) AddItem(ctx context.Context, req *connect.Request[billsplitv1.AddItemRequest]) (*connect.Response[billsplitv1.AddItemResponse], error) {
	if req.Msg.BillID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, ErrMissingBillID)
	}
	wire, err := ValidateItem(req.Msg.Item)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	existing, err := s.store.ListItems(ctx, req.Msg.BillID)
	if err != nil {
		return nil, toConnectError("AddItem", err)
	}
	total := wire.Price
	for _, it := range existing {
		total += it.Price
	}
	if err := ValidateTotal(total); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	item := ItemFromWire(wire)
	item.ID = ""
	if err := s.store.AddItem(ctx, req.Msg.BillID, &item); err != nil {
		return nil, toConnectError("AddItem", err)
	}

	slog.Debug("Item added",
		"bill_id", req.Msg.BillID,
		"item_id", item.ID,
		"price", item.Price,
		"payer_id", item.PayerID,
		"participants", item.Participants.IDs(),
	)
	return connect.NewResponse(&billsplitv1.AddItemResponse{Item: itemToWire(item)}), nil
}

// RemoveItem deletes a purchase from a bill.
func (s *BillService) RemoveItem(ctx context.Context, req *connect.Request[billsplitv1.RemoveItemRequest]) (*connect.Response[billsplitv1.RemoveItemResponse], error) {
	if req.Msg.BillID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, ErrMissingBillID)
	}
	if req.Msg.ItemID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, ErrMissingID)
	}
	if err := s.store.RemoveItem(ctx, req.Msg.BillID, req.Msg.ItemID); err != nil {
		return nil, toConnectError("RemoveItem", err)
	}
	return connect.NewResponse(&billsplitv1.RemoveItemResponse{}), nil
}

// GetSummary settles a stored bill.
func (s *BillService) GetSummary(ctx context.Context, req *connect.Request[billsplitv1.GetSummaryRequest]) (*connect.Response[billsplitv1.GetSummaryResponse], error) {
	if req.Msg.BillID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, ErrMissingBillID)
	}

	_, people, items, err := s.loadBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, toConnectError("GetSummary", err)
	}

	summary := s.summarize(people, items)
	slog.Debug("Summary computed",
		"bill_id", req.Msg.BillID,
		"total", summary.Total,
		"transfers", len(summary.Transfers),
	)
	return connect.NewResponse(&billsplitv1.GetSummaryResponse{Summary: SummaryToWire(summary)}), nil
}

// CalculateSummary settles a roster snapshot without storing anything.
func (s *BillService) CalculateSummary(ctx context.Context, req *connect.Request[billsplitv1.CalculateSummaryRequest]) (*connect.Response[billsplitv1.CalculateSummaryResponse], error) {
	people, items, err := ValidateSnapshot(req.Msg.People, req.Msg.Items)
	if err != nil {
		slog.Debug("CalculateSummary validation failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	for i, item := range items {
		slog.Debug("Processing item",
			"index", i+1,
			"name", item.Name,
			"price", item.Price,
			"payer_id", item.PayerID,
		)
	}

	summary := s.summarize(PeopleFromWire(people), ItemsFromWire(items))
	return connect.NewResponse(&billsplitv1.CalculateSummaryResponse{Summary: SummaryToWire(summary)}), nil
}

func (s *BillService) summarize(people []models.Person, items []models.Item) models.Summary {
	summary := calculator.ComputeSummary(people, items)
	s.metrics.ObserveSummary(summary)
	return summary
}

// loadBill reads a bill with its roster and items.
func (s *BillService) loadBill(ctx context.Context, billID string) (*models.Bill, []models.Person, []models.Item, error) {
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		return nil, nil, nil, err
	}
	people, err := s.store.ListPeople(ctx, billID)
	if err != nil {
		return nil, nil, nil, err
	}
	items, err := s.store.ListItems(ctx, billID)
	if err != nil {
		return nil, nil, nil, err
	}
	return bill, people, items, nil
}
