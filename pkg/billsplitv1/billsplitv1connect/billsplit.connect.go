// Package billsplitv1connect wires the billsplit.v1 messages to Connect
// handlers and clients.
//
// The API is JSON only: handlers answer requests in any other encoding with
// 415 Unsupported Media Type.
package billsplitv1connect

import (
	"context"
	"mime"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	billsplitv1 "github.com/mmynk/billsplit/pkg/billsplitv1"
)

const (
	// BillServiceName is the fully-qualified name of the BillService service.
	BillServiceName = "billsplit.v1.BillService"
)

// Procedure names, for use with connect.Request.Spec and handler routing.
const (
	BillServiceCreateBillProcedure       = "/billsplit.v1.BillService/CreateBill"
	BillServiceGetBillProcedure          = "/billsplit.v1.BillService/GetBill"
	BillServiceListBillsProcedure        = "/billsplit.v1.BillService/ListBills"
	BillServiceDeleteBillProcedure       = "/billsplit.v1.BillService/DeleteBill"
	BillServiceAddPersonProcedure        = "/billsplit.v1.BillService/AddPerson"
	BillServiceRemovePersonProcedure     = "/billsplit.v1.BillService/RemovePerson"
	BillServiceAddItemProcedure          = "/billsplit.v1.BillService/AddItem"
	BillServiceRemoveItemProcedure       = "/billsplit.v1.BillService/RemoveItem"
	BillServiceGetSummaryProcedure       = "/billsplit.v1.BillService/GetSummary"
	BillServiceCalculateSummaryProcedure = "/billsplit.v1.BillService/CalculateSummary"
)

// BillServiceClient is a client for the billsplit.v1.BillService service.
type BillServiceClient interface {
	CreateBill(context.Context, *connect.Request[billsplitv1.CreateBillRequest]) (*connect.Response[billsplitv1.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[billsplitv1.GetBillRequest]) (*connect.Response[billsplitv1.GetBillResponse], error)
	ListBills(context.Context, *connect.Request[billsplitv1.ListBillsRequest]) (*connect.Response[billsplitv1.ListBillsResponse], error)
	DeleteBill(context.Context, *connect.Request[billsplitv1.DeleteBillRequest]) (*connect.Response[billsplitv1.DeleteBillResponse], error)
	AddPerson(context.Context, *connect.Request[billsplitv1.AddPersonRequest]) (*connect.Response[billsplitv1.AddPersonResponse], error)
	RemovePerson(context.Context, *connect.Request[billsplitv1.RemovePersonRequest]) (*connect.Response[billsplitv1.RemovePersonResponse], error)
	AddItem(context.Context, *connect.Request[billsplitv1.AddItemRequest]) (*connect.Response[billsplitv1.AddItemResponse], error)
	RemoveItem(context.Context, *connect.Request[billsplitv1.RemoveItemRequest]) (*connect.Response[billsplitv1.RemoveItemResponse], error)
	GetSummary(context.Context, *connect.Request[billsplitv1.GetSummaryRequest]) (*connect.Response[billsplitv1.GetSummaryResponse], error)
	CalculateSummary(context.Context, *connect.Request[billsplitv1.CalculateSummaryRequest]) (*connect.Response[billsplitv1.CalculateSummaryResponse], error)
}

// NewBillServiceClient constructs a client for the billsplit.v1.BillService
// service. The client speaks the Connect protocol with JSON payloads.
//
// The URL supplied here should be the base URL for the server
// (for example, http://localhost:8080).
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	readOnly := connect.WithClientOptions(append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...)
	return &billServiceClient{
		createBill: connect.NewClient[billsplitv1.CreateBillRequest, billsplitv1.CreateBillResponse](
			httpClient, baseURL+BillServiceCreateBillProcedure, opts...,
		),
		getBill: connect.NewClient[billsplitv1.GetBillRequest, billsplitv1.GetBillResponse](
			httpClient, baseURL+BillServiceGetBillProcedure, readOnly,
		),
		listBills: connect.NewClient[billsplitv1.ListBillsRequest, billsplitv1.ListBillsResponse](
			httpClient, baseURL+BillServiceListBillsProcedure, readOnly,
		),
		deleteBill: connect.NewClient[billsplitv1.DeleteBillRequest, billsplitv1.DeleteBillResponse](
			httpClient, baseURL+BillServiceDeleteBillProcedure, opts...,
		),
		addPerson: connect.NewClient[billsplitv1.AddPersonRequest, billsplitv1.AddPersonResponse](
			httpClient, baseURL+BillServiceAddPersonProcedure, opts...,
		),
		removePerson: connect.NewClient[billsplitv1.RemovePersonRequest, billsplitv1.RemovePersonResponse](
			httpClient, baseURL+BillServiceRemovePersonProcedure, opts...,
		),
		addItem: connect.NewClient[billsplitv1.AddItemRequest, billsplitv1.AddItemResponse](
			httpClient, baseURL+BillServiceAddItemProcedure, opts...,
		),
		removeItem: connect.NewClient[billsplitv1.RemoveItemRequest, billsplitv1.RemoveItemResponse](
			httpClient, baseURL+BillServiceRemoveItemProcedure, opts...,
		),
		getSummary: connect.NewClient[billsplitv1.GetSummaryRequest, billsplitv1.GetSummaryResponse](
			httpClient, baseURL+BillServiceGetSummaryProcedure, readOnly,
		),
		calculateSummary: connect.NewClient[billsplitv1.CalculateSummaryRequest, billsplitv1.CalculateSummaryResponse](
			httpClient, baseURL+BillServiceCalculateSummaryProcedure, readOnly,
		),
	}
}

// billServiceClient implements BillServiceClient.
type billServiceClient struct {
	createBill       *connect.Client[billsplitv1.CreateBillRequest, billsplitv1.CreateBillResponse]
	getBill          *connect.Client[billsplitv1.GetBillRequest, billsplitv1.GetBillResponse]
	listBills        *connect.Client[billsplitv1.ListBillsRequest, billsplitv1.ListBillsResponse]
	deleteBill       *connect.Client[billsplitv1.DeleteBillRequest, billsplitv1.DeleteBillResponse]
	addPerson        *connect.Client[billsplitv1.AddPersonRequest, billsplitv1.AddPersonResponse]
	removePerson     *connect.Client[billsplitv1.RemovePersonRequest, billsplitv1.RemovePersonResponse]
	addItem          *connect.Client[billsplitv1.AddItemRequest, billsplitv1.AddItemResponse]
	removeItem       *connect.Client[billsplitv1.RemoveItemRequest, billsplitv1.RemoveItemResponse]
	getSummary       *connect.Client[billsplitv1.GetSummaryRequest, billsplitv1.GetSummaryResponse]
	calculateSummary *connect.Client[billsplitv1.CalculateSummaryRequest, billsplitv1.CalculateSummaryResponse]
}

func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[billsplitv1.CreateBillRequest]) (*connect.Response[billsplitv1.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[billsplitv1.GetBillRequest]) (*connect.Response[billsplitv1.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *billServiceClient) ListBills(ctx context.Context, req *connect.Request[billsplitv1.ListBillsRequest]) (*connect.Response[billsplitv1.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *billServiceClient) DeleteBill(ctx context.Context, req *connect.Request[billsplitv1.DeleteBillRequest]) (*connect.Response[billsplitv1.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *billServiceClient) AddPerson(ctx context.Context, req *connect.Request[billsplitv1.AddPersonRequest]) (*connect.Response[billsplitv1.AddPersonResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

func (c *billServiceClient) RemovePerson(ctx context.Context, req *connect.Request[billsplitv1.RemovePersonRequest]) (*connect.Response[billsplitv1.RemovePersonResponse], error) {
	return c.removePerson.CallUnary(ctx, req)
}

func (c *billServiceClient) AddItem(ctx context.Context, req *connect.Request[billsplitv1.AddItemRequest]) (*connect.Response[billsplitv1.AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *billServiceClient) RemoveItem(ctx context.Context, req *connect.Request[billsplitv1.RemoveItemRequest]) (*connect.Response[billsplitv1.RemoveItemResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *billServiceClient) GetSummary(ctx context.Context, req *connect.Request[billsplitv1.GetSummaryRequest]) (*connect.Response[billsplitv1.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *billServiceClient) CalculateSummary(ctx context.Context, req *connect.Request[billsplitv1.CalculateSummaryRequest]) (*connect.Response[billsplitv1.CalculateSummaryResponse], error) {
	return c.calculateSummary.CallUnary(ctx, req)
}

// BillServiceHandler is an implementation of the billsplit.v1.BillService service.
type BillServiceHandler interface {
	CreateBill(context.Context, *connect.Request[billsplitv1.CreateBillRequest]) (*connect.Response[billsplitv1.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[billsplitv1.GetBillRequest]) (*connect.Response[billsplitv1.GetBillResponse], error)
	ListBills(context.Context, *connect.Request[billsplitv1.ListBillsRequest]) (*connect.Response[billsplitv1.ListBillsResponse], error)
	DeleteBill(context.Context, *connect.Request[billsplitv1.DeleteBillRequest]) (*connect.Response[billsplitv1.DeleteBillResponse], error)
	AddPerson(context.Context, *connect.Request[billsplitv1.AddPersonRequest]) (*connect.Response[billsplitv1.AddPersonResponse], error)
	RemovePerson(context.Context, *connect.Request[billsplitv1.RemovePersonRequest]) (*connect.Response[billsplitv1.RemovePersonResponse], error)
	AddItem(context.Context, *connect.Request[billsplitv1.AddItemRequest]) (*connect.Response[billsplitv1.AddItemResponse], error)
	RemoveItem(context.Context, *connect.Request[billsplitv1.RemoveItemRequest]) (*connect.Response[billsplitv1.RemoveItemResponse], error)
	GetSummary(context.Context, *connect.Request[billsplitv1.GetSummaryRequest]) (*connect.Response[billsplitv1.GetSummaryResponse], error)
	CalculateSummary(context.Context, *connect.Request[billsplitv1.CalculateSummaryRequest]) (*connect.Response[billsplitv1.CalculateSummaryResponse], error)
}

// NewBillServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithCodec(jsonCharsetCodec{}),
	}, opts...)
	handlerOpts := connect.WithHandlerOptions(opts...)
	readOnly := connect.WithHandlerOptions(append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...)

	createBill := connect.NewUnaryHandler(BillServiceCreateBillProcedure, svc.CreateBill, handlerOpts)
	getBill := connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, readOnly)
	listBills := connect.NewUnaryHandler(BillServiceListBillsProcedure, svc.ListBills, readOnly)
	deleteBill := connect.NewUnaryHandler(BillServiceDeleteBillProcedure, svc.DeleteBill, handlerOpts)
	addPerson := connect.NewUnaryHandler(BillServiceAddPersonProcedure, svc.AddPerson, handlerOpts)
	removePerson := connect.NewUnaryHandler(BillServiceRemovePersonProcedure, svc.RemovePerson, handlerOpts)
	addItem := connect.NewUnaryHandler(BillServiceAddItemProcedure, svc.AddItem, handlerOpts)
	removeItem := connect.NewUnaryHandler(BillServiceRemoveItemProcedure, svc.RemoveItem, handlerOpts)
	getSummary := connect.NewUnaryHandler(BillServiceGetSummaryProcedure, svc.GetSummary, readOnly)
	calculateSummary := connect.NewUnaryHandler(BillServiceCalculateSummaryProcedure, svc.CalculateSummary, readOnly)

	return "/billsplit.v1.BillService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isJSONRequest(r) {
			w.Header().Set("Accept-Post", "application/json")
			http.Error(w, "only application/json is supported", http.StatusUnsupportedMediaType)
			return
		}
		switch r.URL.Path {
		case BillServiceCreateBillProcedure:
			createBill.ServeHTTP(w, r)
		case BillServiceGetBillProcedure:
			getBill.ServeHTTP(w, r)
		case BillServiceListBillsProcedure:
			listBills.ServeHTTP(w, r)
		case BillServiceDeleteBillProcedure:
			deleteBill.ServeHTTP(w, r)
		case BillServiceAddPersonProcedure:
			addPerson.ServeHTTP(w, r)
		case BillServiceRemovePersonProcedure:
			removePerson.ServeHTTP(w, r)
		case BillServiceAddItemProcedure:
			addItem.ServeHTTP(w, r)
		case BillServiceRemoveItemProcedure:
			removeItem.ServeHTTP(w, r)
		case BillServiceGetSummaryProcedure:
			getSummary.ServeHTTP(w, r)
		case BillServiceCalculateSummaryProcedure:
			calculateSummary.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// isJSONRequest reports whether a unary request carries a JSON message.
// GET requests name their encoding in the query string.
func isJSONRequest(r *http.Request) bool {
	if r.Method == http.MethodGet {
		return r.URL.Query().Get("encoding") == "json"
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// UnimplementedBillServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBillServiceHandler struct{}

func (UnimplementedBillServiceHandler) CreateBill(context.Context, *connect.Request[billsplitv1.CreateBillRequest]) (*connect.Response[billsplitv1.CreateBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("CreateBill"))
}

func (UnimplementedBillServiceHandler) GetBill(context.Context, *connect.Request[billsplitv1.GetBillRequest]) (*connect.Response[billsplitv1.GetBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("GetBill"))
}

func (UnimplementedBillServiceHandler) ListBills(context.Context, *connect.Request[billsplitv1.ListBillsRequest]) (*connect.Response[billsplitv1.ListBillsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("ListBills"))
}

func (UnimplementedBillServiceHandler) DeleteBill(context.Context, *connect.Request[billsplitv1.DeleteBillRequest]) (*connect.Response[billsplitv1.DeleteBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("DeleteBill"))
}

func (UnimplementedBillServiceHandler) AddPerson(context.Context, *connect.Request[billsplitv1.AddPersonRequest]) (*connect.Response[billsplitv1.AddPersonResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("AddPerson"))
}

func (UnimplementedBillServiceHandler) RemovePerson(context.Context, *connect.Request[billsplitv1.RemovePersonRequest]) (*connect.Response[billsplitv1.RemovePersonResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("RemovePerson"))
}

func (UnimplementedBillServiceHandler) AddItem(context.Context, *connect.Request[billsplitv1.AddItemRequest]) (*connect.Response[billsplitv1.AddItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("AddItem"))
}

func (UnimplementedBillServiceHandler) RemoveItem(context.Context, *connect.Request[billsplitv1.RemoveItemRequest]) (*connect.Response[billsplitv1.RemoveItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("RemoveItem"))
}

func (UnimplementedBillServiceHandler) GetSummary(context.Context, *connect.Request[billsplitv1.GetSummaryRequest]) (*connect.Response[billsplitv1.GetSummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("GetSummary"))
}

func (UnimplementedBillServiceHandler) CalculateSummary(context.Context, *connect.Request[billsplitv1.CalculateSummaryRequest]) (*connect.Response[billsplitv1.CalculateSummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("CalculateSummary"))
}

type errUnimplemented string

func (e errUnimplemented) Error() string {
	return BillServiceName + "." + string(e) + " is not implemented"
}
