package cloud

import "testing"

func TestGetAvailableProvidersReportsAWSWithProfile(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("AWS_PROFILE", "dev")

	providers := GetAvailableProviders()
	if len(providers) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(providers))
	}
	if providers[0].Type != ProviderAWS {
		t.Errorf("expected provider type %q, got %q", ProviderAWS, providers[0].Type)
	}
	if !providers[0].Available {
		t.Error("AWS should be available when AWS_PROFILE is set")
	}
}

func TestCheckAWSAvailabilityWithStaticKeys(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_PROFILE", "")

	if !checkAWSAvailability() {
		t.Error("AWS should be available when static keys are set")
	}
}

func TestCheckAWSAvailabilityWithNothingConfigured(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("HOME", t.TempDir())

	if checkAWSAvailability() {
		t.Error("AWS should not be available without credentials")
	}
}
