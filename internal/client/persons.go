package client

import (
	"context"
	"strconv"

	"github.com/your-org/frfront/pkg/dto"
)

// Registration is the input of RegisterPerson. StudentID is optional and
// left out of the request when empty.
type Registration struct {
	Name      string
	Surname   string
	Email     string
	StudentID string
	Photo     File
}

func (c *Client) RegisterPerson(ctx context.Context, r Registration) (*dto.PersonRegistrationResponse, error) {
	var out dto.PersonRegistrationResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointRegisterPerson,
		fields: map[string]string{
			"nombre":        r.Name,
			"apellidos":     r.Surname,
			"correo":        r.Email,
			"id_estudiante": r.StudentID,
		},
		file: &r.Photo,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPersons(ctx context.Context) (*dto.PersonListResponse, error) {
	var out dto.PersonListResponse
	if err := c.invoke(ctx, call{endpoint: EndpointListPersons}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPersonByEmail(ctx context.Context, email string) (*dto.PersonResponse, error) {
	var out dto.PersonResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointPersonByEmail,
		params:   map[string]string{"email": email},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPersonByStudentID(ctx context.Context, studentID string) (*dto.PersonResponse, error) {
	var out dto.PersonResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointPersonByStudentID,
		params:   map[string]string{"student_id": studentID},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPersonByID(ctx context.Context, personID int) (*dto.PersonResponse, error) {
	var out dto.PersonResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointPersonByID,
		params:   map[string]string{"person_id": strconv.Itoa(personID)},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePersonFeatures(ctx context.Context, personID int, photo File) (*dto.PersonUpdateFeaturesResponse, error) {
	var out dto.PersonUpdateFeaturesResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointUpdatePersonFeatures,
		params:   map[string]string{"person_id": strconv.Itoa(personID)},
		file:     &photo,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProcessingStats(ctx context.Context) (*dto.ProcessingStatsResponse, error) {
	var out dto.ProcessingStatsResponse
	if err := c.invoke(ctx, call{endpoint: EndpointProcessingStats}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
