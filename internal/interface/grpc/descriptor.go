package grpc

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// ProtoFile is the name under which the news service descriptor is registered.
const ProtoFile = "news.proto"

// Descriptors of news.proto, built once at init.
var (
	newsFile          protoreflect.FileDescriptor
	emptyDesc         protoreflect.MessageDescriptor
	newsIDDesc        protoreflect.MessageDescriptor
	newsDesc          protoreflect.MessageDescriptor
	newsListDesc      protoreflect.MessageDescriptor
	serviceDescriptor protoreflect.ServiceDescriptor
)

func init() {
	fd, err := protodesc.NewFile(newsFileProto(), new(protoregistry.Files))
	if err != nil {
		panic(fmt.Sprintf("build %s: %v", ProtoFile, err))
	}
	newsFile = fd
	emptyDesc = fd.Messages().ByName("Empty")
	newsIDDesc = fd.Messages().ByName("NewsId")
	newsDesc = fd.Messages().ByName("News")
	newsListDesc = fd.Messages().ByName("NewsList")
	serviceDescriptor = fd.Services().ByName("NewsService")

	// server reflection (grpcurl) looks descriptors up in the global registry
	if _, err := protoregistry.GlobalFiles.FindFileByPath(ProtoFile); err != nil {
		_ = protoregistry.GlobalFiles.RegisterFile(fd)
	}
}

// newsFileProto describes news.proto:
//
//	syntax = "proto3";
//
//	service NewsService {
//	  rpc getAllNews (Empty) returns (NewsList) {}
//	  rpc getNews (NewsId) returns (News) {}
//	  rpc addNews (News) returns (News) {}
//	  rpc editNews (News) returns (News) {}
//	  rpc deleteNews (NewsId) returns (Empty) {}
//	}
//
//	message Empty {}
//	message NewsId { string id = 1; }
//	message News {
//	  string id = 1;
//	  string title = 2;
//	  string description = 3;
//	  string text = 4;
//	  string date = 5;
//	}
//	message NewsList { repeated News news = 1; }
func newsFileProto() *descriptorpb.FileDescriptorProto {
	str := func(name string, num int32) *descriptorpb.FieldDescriptorProto {
		return &descriptorpb.FieldDescriptorProto{
			Name:     proto.String(name),
			JsonName: proto.String(name),
			Number:   proto.Int32(num),
			Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			Type:     descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
		}
	}
	rpc := func(name, in, out string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String("." + in),
			OutputType: proto.String("." + out),
		}
	}

	return &descriptorpb.FileDescriptorProto{
		Name:   proto.String(ProtoFile),
		Syntax: proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{Name: proto.String("Empty")},
			{Name: proto.String("NewsId"), Field: []*descriptorpb.FieldDescriptorProto{str("id", 1)}},
			{Name: proto.String("News"), Field: []*descriptorpb.FieldDescriptorProto{
				str("id", 1),
				str("title", 2),
				str("description", 3),
				str("text", 4),
				str("date", 5),
			}},
			{Name: proto.String("NewsList"), Field: []*descriptorpb.FieldDescriptorProto{{
				Name:     proto.String("news"),
				JsonName: proto.String("news"),
				Number:   proto.Int32(1),
				Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
				Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
				TypeName: proto.String(".News"),
			}}},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("NewsService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				rpc(MethodGetAllNews, "Empty", "NewsList"),
				rpc(MethodGetNews, "NewsId", "News"),
				rpc(MethodAddNews, "News", "News"),
				rpc(MethodEditNews, "News", "News"),
				rpc(MethodDeleteNews, "NewsId", "Empty"),
			},
		}},
	}
}
