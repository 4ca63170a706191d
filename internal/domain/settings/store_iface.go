package settings

import "context"

type StoreAPI interface {
	All(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)
	SetWithTaxReset(ctx context.Context, key, value string, resetLineTax bool) (int64, error)
}
