package ingestion

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/campaign-pipeline/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed sample_product.yaml
var sampleProduct []byte

// LoadProduct reads product details from a YAML file. Unknown keys are rejected.
func LoadProduct(filePath string) (*types.ProductDetails, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read product file %s: %w", filePath, err)
	}

	product, err := ParseProduct(data)
	if err != nil {
		return nil, fmt.Errorf("product file %s: %w", filePath, err)
	}
	return product, nil
}

// ParseProduct decodes product details from YAML
func ParseProduct(data []byte) (*types.ProductDetails, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var product types.ProductDetails
	if err := dec.Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to parse product YAML: %w", err)
	}

	if strings.TrimSpace(product.Name) == "" {
		return nil, fmt.Errorf("product name is required")
	}
	return &product, nil
}

// DefaultProduct returns the built-in sample product
func DefaultProduct() *types.ProductDetails {
	product, err := ParseProduct(sampleProduct)
	if err != nil {
		panic(fmt.Sprintf("embedded sample product is invalid: %v", err))
	}
	return product
}
