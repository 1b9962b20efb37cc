package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	pb "github.com/dmitrijs2005/housekeeper/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// fakeServer keeps documents in memory and records the last access token seen.
type fakeServer struct {
	pb.UnimplementedDocumentStoreServer

	mu        sync.Mutex
	docs      map[string]map[string]any
	lastToken string
	failWith  error
}

func (f *fakeServer) record(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(common.AccessTokenHeaderName); len(v) > 0 {
			f.lastToken = v[0]
		}
	}
	return f.failWith
}

func (f *fakeServer) Ping(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	return pb.NewMessage(map[string]any{pb.FieldStatus: pb.StatusOK})
}

func (f *fakeServer) Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	if pb.String(in, pb.FieldPassword) != "secret" {
		return nil, status.Error(codes.Unauthenticated, "bad credentials")
	}
	return pb.NewMessage(map[string]any{pb.FieldUserID: "u1", pb.FieldAccessToken: "tok-1"})
}

func (f *fakeServer) Get(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[pb.String(in, pb.FieldPath)]
	if !ok {
		return nil, status.Error(codes.NotFound, "no document")
	}
	return structpb.NewStruct(doc)
}

func (f *fakeServer) Set(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[pb.String(in, pb.FieldPath)] = pb.Map(in, pb.FieldData)
	return &emptypb.Empty{}, nil
}

func (f *fakeServer) Delete(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, pb.String(in, pb.FieldPath))
	return &emptypb.Empty{}, nil
}

func (f *fakeServer) Query(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	want := in.GetFields()[pb.FieldValue].AsInterface()
	var out []any
	for _, doc := range f.docs {
		if doc[pb.String(in, pb.FieldField)] == want {
			out = append(out, doc)
		}
	}
	return pb.NewMessage(map[string]any{pb.FieldDocuments: out})
}

func (f *fakeServer) UpdateFields(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[pb.String(in, pb.FieldPath)]
	if !ok {
		return nil, status.Error(codes.NotFound, "no document")
	}
	for k, v := range pb.Map(in, pb.FieldFields) {
		doc[k] = v
	}
	return &emptypb.Empty{}, nil
}

func startServer(t *testing.T, srv *fakeServer) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	pb.RegisterDocumentStoreServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func newFakeServer() *fakeServer {
	return &fakeServer{docs: map[string]map[string]any{}}
}

func TestGRPCClient_DocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := startServer(t, newFakeServer())

	chore := &models.Chore{ID: "c1", HouseholdID: "h1", Title: "Dishes", Frequency: models.FrequencyDaily}
	path := models.ChorePath("h1", "c1")
	require.NoError(t, c.Set(ctx, path, chore.Document()))

	doc, err := c.Get(ctx, path)
	require.NoError(t, err)
	got, err := models.ChoreFromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "Dishes", got.Title)
	assert.Equal(t, models.FrequencyDaily, got.Frequency)

	require.NoError(t, c.UpdateFields(ctx, path, map[string]any{"title": "Dishes!"}))
	docs, err := c.QueryByField(ctx, "households/h1/chores", "id", "c1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Dishes!", docs[0].String("title"))

	require.NoError(t, c.Delete(ctx, path))
	_, err = c.Get(ctx, path)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGRPCClient_LoginStoresToken(t *testing.T) {
	ctx := context.Background()
	srv := newFakeServer()
	c := startServer(t, srv)

	_, _, err := c.Login(ctx, "a@b.c", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	userID, token, err := c.Login(ctx, "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, c.Ping(ctx))
	srv.mu.Lock()
	assert.Equal(t, "tok-1", srv.lastToken)
	srv.mu.Unlock()

	c.SetAccessToken("tok-2")
	require.NoError(t, c.Ping(ctx))
	srv.mu.Lock()
	assert.Equal(t, "tok-2", srv.lastToken)
	srv.mu.Unlock()
}

func TestGRPCClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		code     codes.Code
		want     error
		terminal bool
	}{
		{codes.Unavailable, ErrUnavailable, false},
		{codes.DeadlineExceeded, ErrUnavailable, false},
		{codes.ResourceExhausted, ErrUnavailable, false},
		{codes.Aborted, ErrUnavailable, false},
		{codes.Unauthenticated, ErrUnauthorized, false},
		{codes.PermissionDenied, ErrRejected, true},
		{codes.InvalidArgument, ErrRejected, true},
		{codes.FailedPrecondition, ErrRejected, true},
		{codes.NotFound, ErrNotFound, false},
		{codes.AlreadyExists, common.ErrorAlreadyExists, false},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			srv := newFakeServer()
			srv.failWith = status.Error(tt.code, "boom")
			c := startServer(t, srv)

			err := c.Set(context.Background(), "households/h1/chores/c1", models.Document{"id": "c1"})
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.terminal, IsTerminal(err))
		})
	}
}

func TestMapError_Unclassified(t *testing.T) {
	assert.NoError(t, mapError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, mapError(plain))

	err := mapError(status.Error(codes.Internal, "db down"))
	require.Error(t, err)
	assert.False(t, IsTerminal(err))
	assert.Contains(t, err.Error(), "rpc error")
}
