package s3

import (
	"rentwheels/config"
	"rentwheels/infras/otel/mocks"
)

func NewWithClient(cfg *config.Config, client objectAPI) S3 {
	return newWithClient(cfg, mocks.NewOtel(), client)
}
