package company

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Get returns the single company row; a fresh database yields an empty
// profile rather than an error.
func (s *Store) Get(ctx context.Context) (Profile, error) {
	var p Profile
	err := s.DB.QueryRow(ctx, `
    SELECT id, COALESCE(name,''), COALESCE(registration_number,''), COALESCE(address,''),
           COALESCE(contact_email,''), COALESCE(contact_number,''),
           COALESCE(logo_path,''), COALESCE(signature_image,''),
           COALESCE(smtp_host,''), COALESCE(smtp_port,0), COALESCE(smtp_user,''),
           COALESCE(smtp_pass,''), COALESCE(smtp_from,''), COALESCE(smtp_secure,FALSE)
    FROM company
    ORDER BY id
    LIMIT 1
  `).Scan(&p.ID, &p.Name, &p.RegistrationNumber, &p.Address,
		&p.ContactEmail, &p.ContactNumber, &p.LogoPath, &p.SignaturePath,
		&p.SMTPHost, &p.SMTPPort, &p.SMTPUser, &p.SMTPPass, &p.SMTPFrom, &p.SMTPSecure)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, nil
	}
	return p, err
}

// Save upserts the single company row.
func (s *Store) Save(ctx context.Context, p Profile) error {
	existing, err := s.Get(ctx)
	if err != nil {
		return err
	}

	if existing.ID == 0 {
		_, err = s.DB.Exec(ctx, `
      INSERT INTO company (name, registration_number, address, contact_email, contact_number,
                           smtp_host, smtp_port, smtp_user, smtp_pass, smtp_from, smtp_secure)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    `, p.Name, p.RegistrationNumber, p.Address, p.ContactEmail, p.ContactNumber,
			p.SMTPHost, p.SMTPPort, p.SMTPUser, p.SMTPPass, p.SMTPFrom, p.SMTPSecure)
		return err
	}

	_, err = s.DB.Exec(ctx, `
    UPDATE company
    SET name = $1, registration_number = $2, address = $3, contact_email = $4, contact_number = $5,
        smtp_host = $6, smtp_port = $7, smtp_user = $8, smtp_pass = $9, smtp_from = $10, smtp_secure = $11
    WHERE id = $12
  `, p.Name, p.RegistrationNumber, p.Address, p.ContactEmail, p.ContactNumber,
		p.SMTPHost, p.SMTPPort, p.SMTPUser, p.SMTPPass, p.SMTPFrom, p.SMTPSecure, existing.ID)
	return err
}

func (s *Store) SetLogoPath(ctx context.Context, path string) error {
	return s.setImagePath(ctx, "logo_path", path)
}

func (s *Store) SetSignaturePath(ctx context.Context, path string) error {
	return s.setImagePath(ctx, "signature_image", path)
}

func (s *Store) setImagePath(ctx context.Context, column, path string) error {
	existing, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if existing.ID == 0 {
		_, err = s.DB.Exec(ctx, "INSERT INTO company ("+column+") VALUES ($1)", path)
		return err
	}
	_, err = s.DB.Exec(ctx, "UPDATE company SET "+column+" = $1 WHERE id = $2", path, existing.ID)
	return err
}
