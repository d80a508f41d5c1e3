package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

const defaultAdminTopic = "membership-staff"

type NotificationPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type PushNotificationService struct {
	fcmClient *messaging.Client
	topic     string
}

var pushService *PushNotificationService

func InitPushNotificationService() {
	topic := os.Getenv("FIREBASE_ADMIN_TOPIC")
	if topic == "" {
		topic = defaultAdminTopic
	}

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		log.Println("WARNING: FIREBASE_SERVICE_ACCOUNT_PATH not set. Push notifications will not be available.")
		return
	}

	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		log.Printf("Failed to initialize Firebase app with service account: %v", err)
		return
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Printf("Failed to get Firebase messaging client: %v", err)
		return
	}

	pushService = &PushNotificationService{fcmClient: client, topic: topic}
	log.Printf("Push notification service initialized with FCM topic %s", topic)
}

// GetPushNotificationService returns nil when push is not configured.
func GetPushNotificationService() *PushNotificationService {
	return pushService
}

func (s *PushNotificationService) Topic() string {
	return s.topic
}

// SendToStaff sends a notification to every device subscribed to the staff topic.
func (s *PushNotificationService) SendToStaff(payload NotificationPayload) error {
	if s == nil || s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	message := &messaging.Message{
		Topic: s.topic,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := s.fcmClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM topic message: %v", err)
	}

	log.Printf("Successfully sent FCM topic notification to %s. Message ID: %s", s.topic, response)
	return nil
}

// SubscribeStaffDevice subscribes a device token to the staff topic.
func (s *PushNotificationService) SubscribeStaffDevice(token string) error {
	if s == nil || s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := s.fcmClient.SubscribeToTopic(ctx, []string{token}, s.topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %v", s.topic, err)
	}
	if response.FailureCount > 0 {
		return fmt.Errorf("failed to subscribe device to topic %s: %s", s.topic, response.Errors[0].Reason)
	}
	return nil
}
