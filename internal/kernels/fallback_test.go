package kernels

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperscan/internal/imaging"
	"paperscan/internal/logger"
)

type stubProvider struct {
	fail bool
}

func (s stubProvider) Clahe(src *imaging.Gray, _ ClaheConfig) (*imaging.Gray, error) {
	if s.fail {
		return nil, errors.New("primary unavailable")
	}
	return src, nil
}
func (s stubProvider) BoxBlur(src *imaging.Gray, _ int) (*imaging.Gray, error) {
	if s.fail {
		return nil, errors.New("primary unavailable")
	}
	return src, nil
}
func (s stubProvider) AdaptiveThreshold(enhanced, _ *imaging.Gray, _ float64, _ bool) (*imaging.Gray, error) {
	if s.fail {
		return nil, errors.New("primary unavailable")
	}
	return enhanced, nil
}
func (s stubProvider) Dilate(src *imaging.Gray, _ int) (*imaging.Gray, error) {
	if s.fail {
		return nil, errors.New("primary unavailable")
	}
	return src, nil
}
func (s stubProvider) Erode(src *imaging.Gray, _ int) (*imaging.Gray, error) {
	if s.fail {
		return nil, errors.New("primary unavailable")
	}
	return src, nil
}
func (s stubProvider) MorphologicalClose(src *imaging.Gray, _, _ int) (*imaging.Gray, error) {
	if s.fail {
		return nil, errors.New("primary unavailable")
	}
	return src, nil
}
func (s stubProvider) UnsharpMask(src *imaging.Gray, _ float64, _ int) (*imaging.Gray, error) {
	if s.fail {
		return nil, errors.New("primary unavailable")
	}
	return src, nil
}
func (s stubProvider) UnsharpMaskAndDownscale(src *imaging.Gray, _ float64, _, _, _ int) (*imaging.Gray, error) {
	if s.fail {
		return nil, errors.New("primary unavailable")
	}
	return src, nil
}
func (s stubProvider) ClaheAndDownscale(src *imaging.Gray, _ ClaheConfig, _, _ int) (*imaging.Gray, error) {
	if s.fail {
		return nil, errors.New("primary unavailable")
	}
	return src, nil
}

var _ Provider = stubProvider{}

func TestFallbackProviderUsesPrimaryWhenItSucceeds(t *testing.T) {
	fp := NewFallbackProvider(stubProvider{fail: false}, stubProvider{fail: true}, nil)
	src := imaging.New(4, 4)

	out, err := fp.Clahe(src, DefaultClaheConfig())
	require.NoError(t, err)
	assert.Same(t, src, out)
}

func TestFallbackProviderFallsBackToSecondaryOnPrimaryError(t *testing.T) {
	fp := NewFallbackProvider(stubProvider{fail: true}, stubProvider{fail: false}, logger.NoOp{})
	src := imaging.New(4, 4)

	out, err := fp.BoxBlur(src, 3)
	require.NoError(t, err)
	assert.Same(t, src, out)
}

func TestFallbackProviderPropagatesSecondaryError(t *testing.T) {
	fp := NewFallbackProvider(stubProvider{fail: true}, stubProvider{fail: true}, nil)
	src := imaging.New(4, 4)

	_, err := fp.Dilate(src, 3)
	assert.Error(t, err)
}
