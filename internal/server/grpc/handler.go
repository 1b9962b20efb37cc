package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/housekeeper/internal/common"
	pb "github.com/dmitrijs2005/housekeeper/internal/proto"
	"github.com/dmitrijs2005/housekeeper/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// toStatus maps service errors to gRPC status codes. Unknown errors are
// logged and hidden behind Internal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) caller(ctx context.Context) (string, error) {
	id, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return id, nil
}

func (s *GRPCServer) reply(fields map[string]any) (*structpb.Struct, error) {
	msg, err := pb.NewMessage(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return msg, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	return s.reply(map[string]any{pb.FieldStatus: pb.StatusOK})
}

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	s.logger.Info(ctx, "Registration request")

	id, err := s.accounts.Register(ctx, pb.String(req, pb.FieldEmail), pb.String(req, pb.FieldPassword), pb.String(req, pb.FieldDisplayName))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return s.reply(map[string]any{pb.FieldUserID: id})
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	id, token, err := s.accounts.Login(ctx, pb.String(req, pb.FieldEmail), pb.String(req, pb.FieldPassword))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return s.reply(map[string]any{pb.FieldUserID: id, pb.FieldAccessToken: token})
}

func (s *GRPCServer) Get(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.Get(ctx, userID, pb.String(req, pb.FieldPath))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.reply(doc)
}

func (s *GRPCServer) Set(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	data := pb.Map(req, pb.FieldData)
	if err := s.documents.Set(ctx, userID, pb.String(req, pb.FieldPath), data); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Delete(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.documents.Delete(ctx, userID, pb.String(req, pb.FieldPath)); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Query(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	value := req.GetFields()[pb.FieldValue].AsInterface()
	docs, err := s.documents.Query(ctx, userID, pb.String(req, pb.FieldCollection), pb.String(req, pb.FieldField), value)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	list := make([]any, 0, len(docs))
	for _, d := range docs {
		list = append(list, map[string]any(d))
	}
	return s.reply(map[string]any{pb.FieldDocuments: list})
}

func (s *GRPCServer) UpdateFields(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	fields := models.Document(pb.Map(req, pb.FieldFields))
	if err := s.documents.UpdateFields(ctx, userID, pb.String(req, pb.FieldPath), fields); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) AvatarUploadURL(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	key, url, err := s.avatars.UploadURL(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.reply(map[string]any{pb.FieldKey: key, pb.FieldURL: url})
}

func (s *GRPCServer) AvatarDownloadURL(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}

	url, err := s.avatars.DownloadURL(ctx, pb.String(req, pb.FieldKey))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.reply(map[string]any{pb.FieldURL: url})
}
