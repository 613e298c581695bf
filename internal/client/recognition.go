package client

import (
	"context"
	"strconv"

	"github.com/your-org/frfront/pkg/dto"
)

// RecognizeByEmail compares image against the person registered with email.
func (c *Client) RecognizeByEmail(ctx context.Context, email string, image File) (*dto.RecognitionResponse, error) {
	var out dto.RecognitionResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointRecognizeByEmail,
		fields:   map[string]string{"email": email},
		file:     &image,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RecognizeByStudentID(ctx context.Context, studentID string, image File) (*dto.RecognitionResponse, error) {
	var out dto.RecognitionResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointRecognizeByStudentID,
		fields:   map[string]string{"student_id": studentID},
		file:     &image,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RecognizeByPersonID(ctx context.Context, personID int, image File) (*dto.RecognitionResponse, error) {
	var out dto.RecognitionResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointRecognizeByPersonID,
		params:   map[string]string{"person_id": strconv.Itoa(personID)},
		file:     &image,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Identify searches every registered person for the face in image.
func (c *Client) Identify(ctx context.Context, image File) (*dto.IdentificationResponse, error) {
	var out dto.IdentificationResponse
	err := c.invoke(ctx, call{
		endpoint: EndpointIdentify,
		file:     &image,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetRecognitionStats(ctx context.Context) (*dto.RecognitionStatsResponse, error) {
	var out dto.RecognitionStatsResponse
	if err := c.invoke(ctx, call{endpoint: EndpointRecognitionStats}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
