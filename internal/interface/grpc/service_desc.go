package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name. news.proto declares no package.
const ServiceName = "NewsService"

// Method names as exposed on the wire.
const (
	MethodGetAllNews = "getAllNews"
	MethodGetNews    = "getNews"
	MethodAddNews    = "addNews"
	MethodEditNews   = "editNews"
	MethodDeleteNews = "deleteNews"
)

// NewsServiceServer is the server API for the news service.
type NewsServiceServer interface {
	GetAllNews(ctx context.Context, in *Empty) (*NewsList, error)
	GetNews(ctx context.Context, in *NewsID) (*News, error)
	AddNews(ctx context.Context, in *News) (*News, error)
	EditNews(ctx context.Context, in *News) (*News, error)
	DeleteNews(ctx context.Context, in *NewsID) (*Empty, error)
}

// RegisterNewsServiceServer registers srv on s.
func RegisterNewsServiceServer(s grpc.ServiceRegistrar, srv NewsServiceServer) {
	s.RegisterService(&NewsServiceDesc, srv)
}

// NewsServiceDesc is the grpc.ServiceDesc for the news service.
var NewsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NewsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: MethodGetAllNews,
			Handler: unary(MethodGetAllNews, func(s NewsServiceServer, ctx context.Context, in *Empty) (message, error) {
				return s.GetAllNews(ctx, in)
			}),
		},
		{
			MethodName: MethodGetNews,
			Handler: unary(MethodGetNews, func(s NewsServiceServer, ctx context.Context, in *NewsID) (message, error) {
				return s.GetNews(ctx, in)
			}),
		},
		{
			MethodName: MethodAddNews,
			Handler: unary(MethodAddNews, func(s NewsServiceServer, ctx context.Context, in *News) (message, error) {
				return s.AddNews(ctx, in)
			}),
		},
		{
			MethodName: MethodEditNews,
			Handler: unary(MethodEditNews, func(s NewsServiceServer, ctx context.Context, in *News) (message, error) {
				return s.EditNews(ctx, in)
			}),
		},
		{
			MethodName: MethodDeleteNews,
			Handler: unary(MethodDeleteNews, func(s NewsServiceServer, ctx context.Context, in *NewsID) (message, error) {
				return s.DeleteNews(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}

// unary adapts a typed method to grpc.MethodHandler, running the interceptor chain.
// Requests are decoded into a dynamic message of the request descriptor, so the
// negotiated codec (proto by default, json on request) sees a proto.Message.
func unary[Req any, PReq interface {
	*Req
	message
}](method string, call func(NewsServiceServer, context.Context, PReq) (message, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		wire := in.toProto()
		if err := dec(wire); err != nil {
			return nil, err
		}
		in.fromProto(wire)

		handler := func(ctx context.Context, req any) (any, error) {
			out, err := call(srv.(NewsServiceServer), ctx, req.(PReq))
			if err != nil {
				return nil, err
			}
			return out.toProto(), nil
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		return interceptor(ctx, in, info, handler)
	}
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// NewsServiceClient calls the news service. Messages are protobuf encoded unless the
// client is created with grpc.CallContentSubtype(CodecName).
type NewsServiceClient struct {
	cc   grpc.ClientConnInterface
	opts []grpc.CallOption
}

// NewNewsServiceClient returns a client bound to cc. opts are applied to every call.
func NewNewsServiceClient(cc grpc.ClientConnInterface, opts ...grpc.CallOption) *NewsServiceClient {
	return &NewsServiceClient{cc: cc, opts: opts}
}

func (c *NewsServiceClient) invoke(ctx context.Context, method string, in, out message, opts []grpc.CallOption) error {
	wireOut := out.toProto()
	opts = append(append([]grpc.CallOption{}, c.opts...), opts...)
	if err := c.cc.Invoke(ctx, fullMethod(method), in.toProto(), wireOut, opts...); err != nil {
		return err
	}
	out.fromProto(wireOut)
	return nil
}

func (c *NewsServiceClient) GetAllNews(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*NewsList, error) {
	out := new(NewsList)
	if err := c.invoke(ctx, MethodGetAllNews, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NewsServiceClient) GetNews(ctx context.Context, in *NewsID, opts ...grpc.CallOption) (*News, error) {
	out := new(News)
	if err := c.invoke(ctx, MethodGetNews, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NewsServiceClient) AddNews(ctx context.Context, in *News, opts ...grpc.CallOption) (*News, error) {
	out := new(News)
	if err := c.invoke(ctx, MethodAddNews, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NewsServiceClient) EditNews(ctx context.Context, in *News, opts ...grpc.CallOption) (*News, error) {
	out := new(News)
	if err := c.invoke(ctx, MethodEditNews, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NewsServiceClient) DeleteNews(ctx context.Context, in *NewsID, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.invoke(ctx, MethodDeleteNews, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
