// Package grpc serves the DocumentStore API.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/housekeeper/internal/logging"
	pb "github.com/dmitrijs2005/housekeeper/internal/proto"
	"github.com/dmitrijs2005/housekeeper/internal/server/models"
	"google.golang.org/grpc"
)

type accountSvc interface {
	Register(ctx context.Context, email, password, displayName string) (string, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	VerifyToken(token string) (string, error)
}

type documentSvc interface {
	Get(ctx context.Context, userID, path string) (models.Document, error)
	Set(ctx context.Context, userID, path string, data models.Document) error
	Delete(ctx context.Context, userID, path string) error
	Query(ctx context.Context, userID, collection, field string, value any) ([]models.Document, error)
	UpdateFields(ctx context.Context, userID, path string, fields models.Document) error
}

type avatarSvc interface {
	UploadURL(ctx context.Context, userID string) (string, string, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

type GRPCServer struct {
	pb.UnimplementedDocumentStoreServer
	address   string
	accounts  accountSvc
	documents documentSvc
	avatars   avatarSvc
	logger    logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, as accountSvc, ds documentSvc, avs avatarSvc) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		accounts:  as,
		documents: ds,
		avatars:   avs,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.metricsInterceptor,
		s.accessTokenInterceptor,
	))
	pb.RegisterDocumentStoreServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped

	return nil
}
