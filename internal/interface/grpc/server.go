package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"news-api/internal/handler/http/requestid"
	"news-api/internal/observability/logging"
	newsUC "news-api/internal/usecase/news"
)

// Server hosts the news service on a gRPC listener.
type Server struct {
	addr   string
	logger *slog.Logger
	srv    *grpc.Server
}

// NewServer creates a gRPC server for svc listening on addr once Run is called.
func NewServer(addr string, svc *newsUC.Service, logger *slog.Logger) *Server {
	logger = logger.With("module", "grpc_server")
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		RecoveryInterceptor(logger),
		LoggingInterceptor(logger),
	))
	RegisterNewsServiceServer(srv, NewNewsServer(svc))
	reflection.Register(srv)
	return &Server{addr: addr, logger: logger, srv: srv}
}

// Run listens on the configured address and serves until ctx is cancelled, then stops
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("grpc listen %s: %w", s.addr, err)
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("stopping gRPC server")
		s.srv.GracefulStop()
	}()

	s.logger.Info("starting gRPC server", slog.String("address", s.addr))
	return s.Serve(lis)
}

// Serve accepts connections on lis until the server is stopped.
func (s *Server) Serve(lis net.Listener) error {
	if err := s.srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop stops the server immediately.
func (s *Server) Stop() {
	s.srv.Stop()
}

// LoggingInterceptor logs method, status code and duration of every unary call. A request
// id from the x-request-id metadata (or a fresh one) is put into the call context together
// with the logger.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		reqID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get(requestid.HeaderName); len(v) > 0 {
				reqID = v[0]
			}
		}
		if reqID == "" {
			reqID = requestid.New()
		}
		ctx = requestid.WithRequestID(ctx, reqID)
		ctx = logging.WithLogger(ctx, logger)

		resp, err := handler(ctx, req)

		code := status.Code(err)
		level := slog.LevelInfo
		if code == codes.Internal || code == codes.Unknown {
			level = slog.LevelError
		}
		logger.LogAttrs(ctx, level, "grpc call completed",
			slog.String("request_id", reqID),
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}

// RecoveryInterceptor converts panics in handlers into Internal errors.
func RecoveryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					slog.String("method", info.FullMethod),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				err = status.Error(codes.Internal, "Internal Server Error")
			}
		}()
		return handler(ctx, req)
	}
}
