// Package pb describes the DocumentStore gRPC service.
//
// Messages are google.protobuf.Struct and google.protobuf.Empty so the
// service needs no generated message types; the client and server stubs below
// follow the layout protoc-gen-go-grpc produces. Request and response field
// names are listed next to each method.
package pb
