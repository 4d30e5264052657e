package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLLM is a mock implementation of the language model client
type MockLLM struct {
	mock.Mock
}

// Complete mocks the Complete method
func (m *MockLLM) Complete(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

// DescribeImage mocks the DescribeImage method
func (m *MockLLM) DescribeImage(ctx context.Context, system, prompt, imageBase64 string) (string, error) {
	args := m.Called(ctx, system, prompt, imageBase64)
	return args.String(0), args.Error(1)
}

// MockIngredientRecognizer is a mock implementation of the ingredient recognizer
type MockIngredientRecognizer struct {
	mock.Mock
}

// RecognizeIngredients mocks the RecognizeIngredients method
func (m *MockIngredientRecognizer) RecognizeIngredients(ctx context.Context, imageBase64 string) ([]string, error) {
	args := m.Called(ctx, imageBase64)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockObjectStore is a mock implementation of object storage
type MockObjectStore struct {
	mock.Mock
}

// PutObject mocks the PutObject method
func (m *MockObjectStore) PutObject(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}
