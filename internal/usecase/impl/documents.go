package impl

import (
	"cmp"
	"slices"
	"time"

	"trekmate/internal/domain/entity"
	"trekmate/internal/domain/repository"
)

// Document field names shared with the mobile clients.
const (
	fieldName        = "name"
	fieldLocation    = "location"
	fieldImage       = "image"
	fieldDescription = "description"
	fieldDistance    = "distance"
	fieldDuration    = "duration"
	fieldElevation   = "elevation"
	fieldStartDate   = "startDate"
	fieldEndDate     = "endDate"
	fieldCreatedBy   = "createdBy"
	fieldCreatedAt   = "createdAt"
	fieldIsPublic    = "isPublic"
	fieldIsPlanned   = "isPlanned"

	fieldChatID     = "chatId"
	fieldText       = "text"
	fieldSenderID   = "senderId"
	fieldReceiverID = "receiverId"
	fieldSenderName = "senderName"

	fieldFCMToken  = "fcmToken"
	fieldPlatform  = "platform"
	fieldUpdatedAt = "updatedAt"
)

// destinationFields builds the document for d. createdAt is always left to the server.
func destinationFields(d *entity.Destination) repository.Fields {
	fields := repository.Fields{
		fieldName:        d.Name,
		fieldLocation:    d.Location,
		fieldImage:       d.Image,
		fieldDescription: d.Description,
		fieldDistance:    d.Distance,
		fieldDuration:    d.Duration,
		fieldElevation:   d.Elevation,
		fieldIsPublic:    d.IsPublic,
		fieldIsPlanned:   d.IsPlanned,
		fieldCreatedBy:   d.CreatedBy,
		fieldCreatedAt:   repository.ServerTimestamp,
	}
	if d.StartDate != "" {
		fields[fieldStartDate] = d.StartDate
	}
	if d.EndDate != "" {
		fields[fieldEndDate] = d.EndDate
	}

	return fields
}

func destinationFromDocument(doc repository.Document) entity.Destination {
	f := doc.Fields

	return entity.Destination{
		ID:          doc.ID,
		Name:        stringField(f, fieldName),
		Location:    stringField(f, fieldLocation),
		Image:       stringField(f, fieldImage),
		Description: stringField(f, fieldDescription),
		Distance:    stringField(f, fieldDistance),
		Duration:    stringField(f, fieldDuration),
		Elevation:   stringField(f, fieldElevation),
		IsPublic:    boolField(f, fieldIsPublic),
		IsPlanned:   boolField(f, fieldIsPlanned),
		StartDate:   stringField(f, fieldStartDate),
		EndDate:     stringField(f, fieldEndDate),
		CreatedBy:   stringField(f, fieldCreatedBy),
		CreatedAt:   timeField(f, fieldCreatedAt),
	}
}

func messageFields(m *entity.Message) repository.Fields {
	return repository.Fields{
		fieldChatID:     m.ChatID,
		fieldText:       m.Text,
		fieldSenderID:   m.SenderID,
		fieldReceiverID: m.ReceiverID,
		fieldSenderName: m.SenderName,
		fieldCreatedAt:  repository.ServerTimestamp,
	}
}

func messageFromDocument(doc repository.Document) entity.Message {
	f := doc.Fields

	return entity.Message{
		ID:         doc.ID,
		ChatID:     stringField(f, fieldChatID),
		Text:       stringField(f, fieldText),
		SenderID:   stringField(f, fieldSenderID),
		ReceiverID: stringField(f, fieldReceiverID),
		SenderName: stringField(f, fieldSenderName),
		CreatedAt:  timeField(f, fieldCreatedAt),
	}
}

// sortNewestFirst orders by descending creation time. Missing timestamps
// count as the oldest; ties keep their delivered order.
func sortNewestFirst(items []entity.Destination) {
	slices.SortStableFunc(items, func(a, b entity.Destination) int {
		return cmp.Compare(b.CreatedUnix(), a.CreatedUnix())
	})
}

// sortOldestFirst orders messages by ascending creation time. Messages still
// waiting for their server timestamp go last.
func sortOldestFirst(items []entity.Message) {
	slices.SortStableFunc(items, func(a, b entity.Message) int {
		switch {
		case a.CreatedAt == nil && b.CreatedAt == nil:
			return 0
		case a.CreatedAt == nil:
			return 1
		case b.CreatedAt == nil:
			return -1
		default:
			return a.CreatedAt.Compare(*b.CreatedAt)
		}
	})
}

func stringField(f repository.Fields, key string) string {
	s, _ := f[key].(string)

	return s
}

func boolField(f repository.Fields, key string) bool {
	b, _ := f[key].(bool)

	return b
}

func timeField(f repository.Fields, key string) *time.Time {
	switch v := f[key].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	default:
		return nil
	}
}
