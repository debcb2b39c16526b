package htmx

// SwapStrategy is an hx-swap value.
type SwapStrategy string

const (
	SwapInnerHTML SwapStrategy = "innerHTML"
	SwapOuterHTML SwapStrategy = "outerHTML"
	SwapBeforeEnd SwapStrategy = "beforeend"
	SwapNone      SwapStrategy = "none"
)
