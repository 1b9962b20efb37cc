package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	DocumentStore_Ping_FullMethodName              = "/housekeeper.docstore.DocumentStore/Ping"
	DocumentStore_Register_FullMethodName          = "/housekeeper.docstore.DocumentStore/Register"
	DocumentStore_Login_FullMethodName             = "/housekeeper.docstore.DocumentStore/Login"
	DocumentStore_Get_FullMethodName               = "/housekeeper.docstore.DocumentStore/Get"
	DocumentStore_Set_FullMethodName               = "/housekeeper.docstore.DocumentStore/Set"
	DocumentStore_Delete_FullMethodName            = "/housekeeper.docstore.DocumentStore/Delete"
	DocumentStore_Query_FullMethodName             = "/housekeeper.docstore.DocumentStore/Query"
	DocumentStore_UpdateFields_FullMethodName      = "/housekeeper.docstore.DocumentStore/UpdateFields"
	DocumentStore_AvatarUploadURL_FullMethodName   = "/housekeeper.docstore.DocumentStore/AvatarUploadURL"
	DocumentStore_AvatarDownloadURL_FullMethodName = "/housekeeper.docstore.DocumentStore/AvatarDownloadURL"
)

// DocumentStoreClient is the client API for the DocumentStore service.
type DocumentStoreClient interface {
	// Ping returns {status}.
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	// Register takes {email, password, displayName} and returns {userId}.
	Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	// Login takes {email, password} and returns {userId, accessToken}.
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	// Get takes {path} and returns the document.
	Get(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	// Set takes {path, data}.
	Set(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	// Delete takes {path}.
	Delete(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	// Query takes {collection, field, value} and returns {documents}.
	Query(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	// UpdateFields takes {path, fields}.
	UpdateFields(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	// AvatarUploadURL returns {key, url}.
	AvatarUploadURL(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	// AvatarDownloadURL takes {key} and returns {url}.
	AvatarDownloadURL(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type documentStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewDocumentStoreClient(cc grpc.ClientConnInterface) DocumentStoreClient {
	return &documentStoreClient{cc}
}

func (c *documentStoreClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DocumentStore_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DocumentStore_Register_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DocumentStore_Login_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) Get(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DocumentStore_Get_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) Set(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DocumentStore_Set_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) Delete(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DocumentStore_Delete_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) Query(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DocumentStore_Query_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) UpdateFields(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DocumentStore_UpdateFields_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) AvatarUploadURL(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DocumentStore_AvatarUploadURL_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) AvatarDownloadURL(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DocumentStore_AvatarDownloadURL_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// DocumentStoreServer is the server API for the DocumentStore service.
// Implementations must embed UnimplementedDocumentStoreServer.
type DocumentStoreServer interface {
	Ping(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Get(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Set(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Delete(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Query(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateFields(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	AvatarUploadURL(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	AvatarDownloadURL(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedDocumentStoreServer()
}

type UnimplementedDocumentStoreServer struct{}

func (UnimplementedDocumentStoreServer) Ping(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedDocumentStoreServer) Register(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedDocumentStoreServer) Login(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedDocumentStoreServer) Get(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedDocumentStoreServer) Set(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Set not implemented")
}
func (UnimplementedDocumentStoreServer) Delete(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Delete not implemented")
}
func (UnimplementedDocumentStoreServer) Query(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Query not implemented")
}
func (UnimplementedDocumentStoreServer) UpdateFields(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateFields not implemented")
}
func (UnimplementedDocumentStoreServer) AvatarUploadURL(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AvatarUploadURL not implemented")
}
func (UnimplementedDocumentStoreServer) AvatarDownloadURL(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AvatarDownloadURL not implemented")
}
func (UnimplementedDocumentStoreServer) mustEmbedUnimplementedDocumentStoreServer() {}

func RegisterDocumentStoreServer(s grpc.ServiceRegistrar, srv DocumentStoreServer) {
	s.RegisterService(&DocumentStore_ServiceDesc, srv)
}

func _DocumentStore_Ping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocumentStoreServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DocumentStore_Ping_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DocumentStoreServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _DocumentStore_AvatarUploadURL_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocumentStoreServer).AvatarUploadURL(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DocumentStore_AvatarUploadURL_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DocumentStoreServer).AvatarUploadURL(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// structHandler builds a method handler for the methods taking a Struct.
func structHandler[R any](fullMethod string, call func(DocumentStoreServer, context.Context, *structpb.Struct) (R, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DocumentStoreServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DocumentStoreServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DocumentStore_ServiceDesc is the grpc.ServiceDesc for the DocumentStore service.
var DocumentStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "housekeeper.docstore.DocumentStore",
	HandlerType: (*DocumentStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: _DocumentStore_Ping_Handler},
		{MethodName: "Register", Handler: structHandler(DocumentStore_Register_FullMethodName, DocumentStoreServer.Register)},
		{MethodName: "Login", Handler: structHandler(DocumentStore_Login_FullMethodName, DocumentStoreServer.Login)},
		{MethodName: "Get", Handler: structHandler(DocumentStore_Get_FullMethodName, DocumentStoreServer.Get)},
		{MethodName: "Set", Handler: structHandler(DocumentStore_Set_FullMethodName, DocumentStoreServer.Set)},
		{MethodName: "Delete", Handler: structHandler(DocumentStore_Delete_FullMethodName, DocumentStoreServer.Delete)},
		{MethodName: "Query", Handler: structHandler(DocumentStore_Query_FullMethodName, DocumentStoreServer.Query)},
		{MethodName: "UpdateFields", Handler: structHandler(DocumentStore_UpdateFields_FullMethodName, DocumentStoreServer.UpdateFields)},
		{MethodName: "AvatarUploadURL", Handler: _DocumentStore_AvatarUploadURL_Handler},
		{MethodName: "AvatarDownloadURL", Handler: structHandler(DocumentStore_AvatarDownloadURL_FullMethodName, DocumentStoreServer.AvatarDownloadURL)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "docstore.proto",
}
