package company

import "context"

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context) (Profile, error) {
	return s.store.Get(ctx)
}

func (s *Service) Save(ctx context.Context, p Profile) error {
	return s.store.Save(ctx, p)
}

func (s *Service) SetLogoPath(ctx context.Context, path string) error {
	return s.store.SetLogoPath(ctx, path)
}

func (s *Service) SetSignaturePath(ctx context.Context, path string) error {
	return s.store.SetSignaturePath(ctx, path)
}
