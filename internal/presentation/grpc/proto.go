package grpc

// proto.go hand-writes the service definition of botscore.v1.BotDetectionService. Messages
// travel with the JSON codec registered in codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "botscore.v1.BotDetectionService"

// BotDetectionServiceServer is the server API for BotDetectionService.
type BotDetectionServiceServer interface {
	AnalyzeAccount(context.Context, *AnalyzeAccountRequest) (*AnalyzeAccountResponse, error)
	AnalyzeBatch(context.Context, *AnalyzeBatchRequest) (*AnalyzeBatchResponse, error)
	GetAnalysis(context.Context, *GetAnalysisRequest) (*GetAnalysisResponse, error)
	ListAnalyses(context.Context, *ListAnalysesRequest) (*ListAnalysesResponse, error)
	mustEmbedUnimplementedBotDetectionServiceServer()
}

// UnimplementedBotDetectionServiceServer provides forward-compatible default implementations.
type UnimplementedBotDetectionServiceServer struct{}

func (UnimplementedBotDetectionServiceServer) AnalyzeAccount(context.Context, *AnalyzeAccountRequest) (*AnalyzeAccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeAccount not implemented")
}
func (UnimplementedBotDetectionServiceServer) AnalyzeBatch(context.Context, *AnalyzeBatchRequest) (*AnalyzeBatchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeBatch not implemented")
}
func (UnimplementedBotDetectionServiceServer) GetAnalysis(context.Context, *GetAnalysisRequest) (*GetAnalysisResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAnalysis not implemented")
}
func (UnimplementedBotDetectionServiceServer) ListAnalyses(context.Context, *ListAnalysesRequest) (*ListAnalysesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAnalyses not implemented")
}
func (UnimplementedBotDetectionServiceServer) mustEmbedUnimplementedBotDetectionServiceServer() {}

// RegisterBotDetectionServiceServer registers the service with a gRPC server.
func RegisterBotDetectionServiceServer(s grpclib.ServiceRegistrar, srv BotDetectionServiceServer) {
	s.RegisterService(&botDetectionServiceDesc, srv)
}

var botDetectionServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BotDetectionServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AnalyzeAccount", Handler: unaryHandler(func(s BotDetectionServiceServer, ctx context.Context, req *AnalyzeAccountRequest) (any, error) {
			return s.AnalyzeAccount(ctx, req)
		})},
		{MethodName: "AnalyzeBatch", Handler: unaryHandler(func(s BotDetectionServiceServer, ctx context.Context, req *AnalyzeBatchRequest) (any, error) {
			return s.AnalyzeBatch(ctx, req)
		})},
		{MethodName: "GetAnalysis", Handler: unaryHandler(func(s BotDetectionServiceServer, ctx context.Context, req *GetAnalysisRequest) (any, error) {
			return s.GetAnalysis(ctx, req)
		})},
		{MethodName: "ListAnalyses", Handler: unaryHandler(func(s BotDetectionServiceServer, ctx context.Context, req *ListAnalysesRequest) (any, error) {
			return s.ListAnalyses(ctx, req)
		})},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "botscore/v1/botscore.proto",
}

// unaryHandler adapts a typed method to grpc's MethodHandler, running interceptors the way
// generated code does.
func unaryHandler[Req any](call func(BotDetectionServiceServer, context.Context, *Req) (any, error)) grpclib.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		req := new(Req)
		if err := dec(req); err != nil {
			return nil, err
		}
		s := srv.(BotDetectionServiceServer)
		if interceptor == nil {
			return call(s, ctx, req)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod(ctx)}
		return interceptor(ctx, req, info, func(ctx context.Context, r any) (any, error) {
			return call(s, ctx, r.(*Req))
		})
	}
}

func fullMethod(ctx context.Context) string {
	if m, ok := grpclib.Method(ctx); ok {
		return m
	}
	return ""
}

// BotDetectionServiceClient is the client API for BotDetectionService.
type BotDetectionServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewBotDetectionServiceClient creates a client. Calls use the JSON codec.
func NewBotDetectionServiceClient(cc grpclib.ClientConnInterface) *BotDetectionServiceClient {
	return &BotDetectionServiceClient{cc: cc}
}

func (c *BotDetectionServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpclib.CallOption) error {
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

// AnalyzeAccount calls BotDetectionService.AnalyzeAccount.
func (c *BotDetectionServiceClient) AnalyzeAccount(ctx context.Context, in *AnalyzeAccountRequest, opts ...grpclib.CallOption) (*AnalyzeAccountResponse, error) {
	out := new(AnalyzeAccountResponse)
	if err := c.invoke(ctx, "AnalyzeAccount", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyzeBatch calls BotDetectionService.AnalyzeBatch.
func (c *BotDetectionServiceClient) AnalyzeBatch(ctx context.Context, in *AnalyzeBatchRequest, opts ...grpclib.CallOption) (*AnalyzeBatchResponse, error) {
	out := new(AnalyzeBatchResponse)
	if err := c.invoke(ctx, "AnalyzeBatch", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAnalysis calls BotDetectionService.GetAnalysis.
func (c *BotDetectionServiceClient) GetAnalysis(ctx context.Context, in *GetAnalysisRequest, opts ...grpclib.CallOption) (*GetAnalysisResponse, error) {
	out := new(GetAnalysisResponse)
	if err := c.invoke(ctx, "GetAnalysis", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAnalyses calls BotDetectionService.ListAnalyses.
func (c *BotDetectionServiceClient) ListAnalyses(ctx context.Context, in *ListAnalysesRequest, opts ...grpclib.CallOption) (*ListAnalysesResponse, error) {
	out := new(ListAnalysesResponse)
	if err := c.invoke(ctx, "ListAnalyses", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
