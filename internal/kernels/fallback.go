package kernels

import (
	"paperscan/internal/imaging"
	"paperscan/internal/logger"
)

// FallbackProvider tries Primary first and falls through to Secondary
// whenever a call fails, per spec §7's "kernel unavailable — silently
// fall back to the reference implementation" and Design Notes §9's
// capability-set model. In practice Primary is the gocv-accelerated
// provider and Secondary is the pure-Go reference implementation, which
// is always available.
type FallbackProvider struct {
	Primary   Provider
	Secondary Provider
	Logger    logger.Logger
}

// NewFallbackProvider returns a Provider that prefers primary and falls
// back to secondary. A nil log defaults to a no-op logger.
func NewFallbackProvider(primary, secondary Provider, log logger.Logger) FallbackProvider {
	if log == nil {
		log = logger.NoOp{}
	}
	return FallbackProvider{Primary: primary, Secondary: secondary, Logger: log}
}

func (p FallbackProvider) logFallback(kernel string, err error) {
	p.Logger.Warning("kernels.fallback", "primary kernel failed, using reference implementation", map[string]interface{}{
		"kernel": kernel,
		"error":  err.Error(),
	})
}

func (p FallbackProvider) Clahe(src *imaging.Gray, cfg ClaheConfig) (*imaging.Gray, error) {
	if out, err := p.Primary.Clahe(src, cfg); err == nil {
		return out, nil
	} else {
		p.logFallback("clahe", err)
	}
	return p.Secondary.Clahe(src, cfg)
}

func (p FallbackProvider) BoxBlur(src *imaging.Gray, k int) (*imaging.Gray, error) {
	if out, err := p.Primary.BoxBlur(src, k); err == nil {
		return out, nil
	} else {
		p.logFallback("boxBlur", err)
	}
	return p.Secondary.BoxBlur(src, k)
}

func (p FallbackProvider) AdaptiveThreshold(enhanced, blurred *imaging.Gray, c float64, invert bool) (*imaging.Gray, error) {
	if out, err := p.Primary.AdaptiveThreshold(enhanced, blurred, c, invert); err == nil {
		return out, nil
	} else {
		p.logFallback("adaptiveThreshold", err)
	}
	return p.Secondary.AdaptiveThreshold(enhanced, blurred, c, invert)
}

func (p FallbackProvider) Dilate(src *imaging.Gray, k int) (*imaging.Gray, error) {
	if out, err := p.Primary.Dilate(src, k); err == nil {
		return out, nil
	} else {
		p.logFallback("dilate", err)
	}
	return p.Secondary.Dilate(src, k)
}

func (p FallbackProvider) Erode(src *imaging.Gray, k int) (*imaging.Gray, error) {
	if out, err := p.Primary.Erode(src, k); err == nil {
		return out, nil
	} else {
		p.logFallback("erode", err)
	}
	return p.Secondary.Erode(src, k)
}

func (p FallbackProvider) MorphologicalClose(src *imaging.Gray, k, iterations int) (*imaging.Gray, error) {
	if out, err := p.Primary.MorphologicalClose(src, k, iterations); err == nil {
		return out, nil
	} else {
		p.logFallback("morphologicalClose", err)
	}
	return p.Secondary.MorphologicalClose(src, k, iterations)
}

func (p FallbackProvider) UnsharpMask(src *imaging.Gray, amount float64, radius int) (*imaging.Gray, error) {
	if out, err := p.Primary.UnsharpMask(src, amount, radius); err == nil {
		return out, nil
	} else {
		p.logFallback("unsharpMask", err)
	}
	return p.Secondary.UnsharpMask(src, amount, radius)
}

func (p FallbackProvider) UnsharpMaskAndDownscale(src *imaging.Gray, amount float64, radius, dstW, dstH int) (*imaging.Gray, error) {
	if out, err := p.Primary.UnsharpMaskAndDownscale(src, amount, radius, dstW, dstH); err == nil {
		return out, nil
	} else {
		p.logFallback("unsharpMaskAndDownscale", err)
	}
	return p.Secondary.UnsharpMaskAndDownscale(src, amount, radius, dstW, dstH)
}

func (p FallbackProvider) ClaheAndDownscale(src *imaging.Gray, cfg ClaheConfig, dstW, dstH int) (*imaging.Gray, error) {
	if out, err := p.Primary.ClaheAndDownscale(src, cfg, dstW, dstH); err == nil {
		return out, nil
	} else {
		p.logFallback("claheAndDownscale", err)
	}
	return p.Secondary.ClaheAndDownscale(src, cfg, dstW, dstH)
}

var _ Provider = FallbackProvider{}
