// Package credentials resolves the operator's AWS identity and, when none is
// available, lets the operator configure one now or defer it. Nothing in this
// package is fatal: missing credentials only matter at deploy time.
package credentials

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Resolver returns the identifier of the current cloud principal.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// STSResolver asks STS who the default credential chain belongs to.
// The configuration is loaded on every call so credentials written by
// `aws configure` in between are picked up.
type STSResolver struct {
	Timeout time.Duration
	Options []func(*config.LoadOptions) error
}

const defaultResolveTimeout = 10 * time.Second

func (r STSResolver) Resolve(ctx context.Context) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctx, r.Options...)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("GetCallerIdentity failed: %w", err)
	}
	arn := aws.ToString(out.Arn)
	if arn == "" {
		return "", fmt.Errorf("GetCallerIdentity returned no ARN")
	}
	return arn, nil
}
