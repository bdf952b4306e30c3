// Package awscfg construye la configuración del SDK de AWS compartida por DynamoDB y S3.
package awscfg

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/jhoicas/Obrix-api/pkg/config"
)

// Load arma aws.Config. Con AccessKeyID definido usa credenciales estáticas
// (LocalStack / DynamoDB local no las valida pero el SDK las exige); si no, la cadena por defecto.
func Load(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("aws: cargar configuración: %w", err)
	}
	return awsCfg, nil
}

// Endpoint devuelve el endpoint personalizado o nil para usar el de AWS.
func Endpoint(cfg config.AWSConfig) *string {
	if cfg.Endpoint == "" {
		return nil
	}
	return aws.String(cfg.Endpoint)
}
