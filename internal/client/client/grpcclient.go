package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	pb "github.com/dmitrijs2005/housekeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
)

const defaultCallTimeout = 10 * time.Second

type GRPCClient struct {
	conn   *grpc.ClientConn
	client pb.DocumentStoreClient

	callTimeout time.Duration

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) unaryInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	if _, ok := ctx.Deadline(); !ok && s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects to target lazily. Extra dial options are appended
// after the defaults, so tests can replace the dialer and credentials.
func NewGRPCClient(target string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{callTimeout: defaultCallTimeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.unaryInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client: %w", err)
	}
	c.conn = conn
	c.client = pb.NewDocumentStoreClient(conn)
	return c, nil
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return mapError(err)
	}
	if pb.String(resp, pb.FieldStatus) != pb.StatusOK {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email, password, displayName string) (string, error) {
	req, err := pb.NewMessage(map[string]any{
		pb.FieldEmail:       email,
		pb.FieldPassword:    password,
		pb.FieldDisplayName: displayName,
	})
	if err != nil {
		return "", err
	}
	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return "", mapError(err)
	}
	return pb.String(resp, pb.FieldUserID), nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (string, string, error) {
	req, err := pb.NewMessage(map[string]any{
		pb.FieldEmail:    email,
		pb.FieldPassword: password,
	})
	if err != nil {
		return "", "", err
	}
	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return "", "", mapError(err)
	}
	token := pb.String(resp, pb.FieldAccessToken)
	s.SetAccessToken(token)
	return pb.String(resp, pb.FieldUserID), token, nil
}

func (s *GRPCClient) Get(ctx context.Context, path string) (models.Document, error) {
	req, err := pb.NewMessage(map[string]any{pb.FieldPath: path})
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Get(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return models.Document(resp.AsMap()), nil
}

func (s *GRPCClient) Set(ctx context.Context, path string, doc models.Document) error {
	req, err := pb.NewMessage(map[string]any{
		pb.FieldPath: path,
		pb.FieldData: map[string]any(doc),
	})
	if err != nil {
		return err
	}
	_, err = s.client.Set(ctx, req)
	return mapError(err)
}

func (s *GRPCClient) Delete(ctx context.Context, path string) error {
	req, err := pb.NewMessage(map[string]any{pb.FieldPath: path})
	if err != nil {
		return err
	}
	_, err = s.client.Delete(ctx, req)
	return mapError(err)
}

func (s *GRPCClient) QueryByField(ctx context.Context, collection, field string, value any) ([]models.Document, error) {
	req, err := pb.NewMessage(map[string]any{
		pb.FieldCollection: collection,
		pb.FieldField:      field,
		pb.FieldValue:      value,
	})
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Query(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	raw := pb.Maps(resp, pb.FieldDocuments)
	docs := make([]models.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, models.Document(m))
	}
	return docs, nil
}

func (s *GRPCClient) UpdateFields(ctx context.Context, path string, fields map[string]any) error {
	req, err := pb.NewMessage(map[string]any{
		pb.FieldPath:   path,
		pb.FieldFields: fields,
	})
	if err != nil {
		return err
	}
	_, err = s.client.UpdateFields(ctx, req)
	return mapError(err)
}

func (s *GRPCClient) AvatarUploadURL(ctx context.Context) (string, string, error) {
	resp, err := s.client.AvatarUploadURL(ctx, &emptypb.Empty{})
	if err != nil {
		return "", "", mapError(err)
	}
	return pb.String(resp, pb.FieldKey), pb.String(resp, pb.FieldURL), nil
}

func (s *GRPCClient) AvatarDownloadURL(ctx context.Context, key string) (string, error) {
	req, err := pb.NewMessage(map[string]any{pb.FieldKey: key})
	if err != nil {
		return "", err
	}
	resp, err := s.client.AvatarDownloadURL(ctx, req)
	if err != nil {
		return "", mapError(err)
	}
	return pb.String(resp, pb.FieldURL), nil
}
