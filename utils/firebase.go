package utils

import (
	"context"

	"winetrail/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the messaging client. Push stays disabled when no
// credentials file is configured or the app cannot be created.
func FirebaseInit() *messaging.Client {
	logger := GetLogger()
	path := config.AppConfig.FirebaseCredentialsFile
	if path == "" {
		logger.Info("firebase: no credentials configured, push disabled")
		return nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(path))
	if err != nil {
		logger.Error("firebase: error initializing app", zap.Error(err))
		return nil
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		logger.Error("firebase: error getting Messaging client", zap.Error(err))
		return nil
	}

	FCMClient = client
	return client
}
