package cli

import (
	"context"
	"os"
)

// connectShopifyCmd links a Shopify store by domain and Admin API token.
func (a *App) connectShopifyCmd(ctx context.Context) error {
	domain, err := getSimpleText(a.reader, "Shop domain (e.g. my-store.myshopify.com)", os.Stdout)
	if err != nil {
		return err
	}
	token, err := getSimpleText(a.reader, "Admin API access token", os.Stdout)
	if err != nil {
		return err
	}

	msg, err := a.metrics.ConnectShopify(ctx, domain, token)
	if err != nil {
		printRequestError(err)
		return err
	}
	printlnFn(okStyle.Render(msg))
	return nil
}

// connectGoogleCmd starts the Google Analytics OAuth flow. The backend hands
// back a consent URL; the user opens it in a browser and brings the code back
// with 'google-code'.
func (a *App) connectGoogleCmd(ctx context.Context) error {
	url, err := a.metrics.GoogleAuthURL(ctx)
	if err != nil {
		printRequestError(err)
		return err
	}
	printlnFn("Open this URL in your browser and authorize access:")
	printlnFn("  " + url)
	printlnFn("Then run: google-code <code>")
	return nil
}

// googleCodeCmd completes the OAuth flow with the code from the consent page.
func (a *App) googleCodeCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: google-code <code>")
		return nil
	}

	msg, err := a.metrics.CompleteGoogle(ctx, args[0])
	if err != nil {
		printRequestError(err)
		return err
	}
	printlnFn(okStyle.Render(msg))
	printlnFn("Now pick a property with 'set-property'.")
	return nil
}

// setPropertyCmd selects which GA4 property feeds the dashboard.
func (a *App) setPropertyCmd(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "GA4 property ID", os.Stdout)
	if err != nil {
		return err
	}

	msg, err := a.metrics.SetGoogleProperty(ctx, id)
	if err != nil {
		printRequestError(err)
		return err
	}
	printlnFn(okStyle.Render(msg))
	return nil
}
