package grpc

import (
	"encoding/json"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"news-api/internal/domain/entity"
)

// message is implemented by every request and response type. On the wire each one is
// carried as a dynamic message of its news.proto descriptor.
type message interface {
	toProto() *dynamicpb.Message
	fromProto(m protoreflect.Message)
}

// Empty is the request of getAllNews and the response of deleteNews.
type Empty struct{}

// NewsID identifies one article.
type NewsID struct {
	ID string `json:"id"`
}

// News is the wire form of an article. Date is ISO 8601; on output it is rendered with
// millisecond precision in UTC.
type News struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Text        string `json:"text,omitempty"`
	Date        string `json:"date,omitempty"`
}

// NewsList is the response of getAllNews.
type NewsList struct {
	News []*News `json:"news"`
}

func (*Empty) toProto() *dynamicpb.Message { return dynamicpb.NewMessage(emptyDesc) }

func (*Empty) fromProto(protoreflect.Message) {}

func (m *NewsID) toProto() *dynamicpb.Message {
	pm := dynamicpb.NewMessage(newsIDDesc)
	setString(pm, "id", m.ID)
	return pm
}

func (m *NewsID) fromProto(pm protoreflect.Message) {
	m.ID = getString(pm, "id")
}

func (m *News) toProto() *dynamicpb.Message {
	pm := dynamicpb.NewMessage(newsDesc)
	setString(pm, "id", m.ID)
	setString(pm, "title", m.Title)
	setString(pm, "description", m.Description)
	setString(pm, "text", m.Text)
	setString(pm, "date", m.Date)
	return pm
}

func (m *News) fromProto(pm protoreflect.Message) {
	m.ID = getString(pm, "id")
	m.Title = getString(pm, "title")
	m.Description = getString(pm, "description")
	m.Text = getString(pm, "text")
	m.Date = getString(pm, "date")
}

func (m *NewsList) toProto() *dynamicpb.Message {
	pm := dynamicpb.NewMessage(newsListDesc)
	list := pm.Mutable(newsListDesc.Fields().ByName("news")).List()
	for _, n := range m.News {
		list.Append(protoreflect.ValueOfMessage(n.toProto()))
	}
	return pm
}

func (m *NewsList) fromProto(pm protoreflect.Message) {
	list := pm.Get(newsListDesc.Fields().ByName("news")).List()
	m.News = make([]*News, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		n := new(News)
		n.fromProto(list.Get(i).Message())
		m.News = append(m.News, n)
	}
}

// proto3 strings have no presence; the empty string is never set explicitly.
func setString(pm *dynamicpb.Message, name, value string) {
	if value == "" {
		return
	}
	pm.Set(pm.Descriptor().Fields().ByName(protoreflect.Name(name)), protoreflect.ValueOfString(value))
}

func getString(pm protoreflect.Message, name string) string {
	return pm.Get(pm.Descriptor().Fields().ByName(protoreflect.Name(name))).String()
}

func fromEntity(n *entity.News) *News {
	return &News{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Text:        n.Text,
		Date:        entity.FormatDate(n.Date),
	}
}

// payload converts the message into a validator payload. Empty fields are treated as
// absent, matching proto3 default semantics.
func (m *News) payload() entity.Payload {
	p := entity.Payload{}
	put := func(key, value string) {
		if value == "" {
			return
		}
		b, _ := json.Marshal(value)
		p[key] = b
	}
	put("title", m.Title)
	put("description", m.Description)
	put("text", m.Text)
	put("date", m.Date)
	return p
}
