package script

// Built-in script templates. Each renders with templateData.

const ciCDPython = `#!/usr/bin/env python3
"""CI/CD automation script.

{{.Requirements}}
"""

import subprocess
import sys
import logging
from pathlib import Path

logging.basicConfig(level=logging.INFO, format="%(asctime)s %(levelname)s %(message)s")
logger = logging.getLogger(__name__)


def setup_environment():
    logger.info("Setting up build environment")
    Path("build").mkdir(exist_ok=True)
    Path("test-results").mkdir(exist_ok=True)
    subprocess.run([sys.executable, "-m", "pip", "install", "-r", "requirements.txt"], check=True)


def run_tests():
    logger.info("Running test suite")
    result = subprocess.run(
        [sys.executable, "-m", "pytest", "--junitxml=test-results/junit.xml", "--cov=src"],
        capture_output=True,
        text=True,
    )
    if result.returncode != 0:
        logger.error("Tests failed:\n%s", result.stdout)
        return False
    return True


def build_application():
    logger.info("Building application")
    subprocess.run([sys.executable, "setup.py", "build"], check=True)


def main():
    setup_environment()
    if not run_tests():
        sys.exit(1)
    build_application()
    logger.info("Pipeline completed")


if __name__ == "__main__":
    main()
`

const ciCDBash = `#!/bin/bash
# CI/CD automation script.
# {{.Requirements}}

set -e

PROJECT_ROOT=$(pwd)
BUILD_DIR="$PROJECT_ROOT/build"
TEST_RESULTS_DIR="$PROJECT_ROOT/test-results"

log_info() {
    echo "[INFO] $1"
}

setup_environment() {
    log_info "Setting up build environment"
    mkdir -p "$BUILD_DIR" "$TEST_RESULTS_DIR"
    if [ -f "requirements.txt" ]; then
        pip install -r requirements.txt
    fi
}

run_tests() {
    log_info "Running test suite"
    pytest --junitxml="$TEST_RESULTS_DIR/junit.xml"
}

build_application() {
    log_info "Building application"
}

setup_environment
run_tests
build_application
log_info "Pipeline completed"
`

const deploymentBash = `#!/bin/bash
# Deployment automation script.
# {{.Requirements}}

set -e

APP_NAME="${APP_NAME:-my-app}"
ENVIRONMENT="${ENVIRONMENT:-production}"
DOCKER_IMAGE="$APP_NAME:latest"

echo "Deploying $APP_NAME to $ENVIRONMENT"

echo "Building image"
docker build -t "$DOCKER_IMAGE" .

echo "Applying manifests"
kubectl apply -f k8s/

echo "Waiting for rollout"
kubectl rollout status "deployment/$APP_NAME" --timeout=300s

echo "Deployment completed"
`

const testingPython = `#!/usr/bin/env python3
"""Test automation script.

{{.Requirements}}
"""

import subprocess
import sys
import logging
from pathlib import Path

logging.basicConfig(level=logging.INFO)
logger = logging.getLogger(__name__)

SUITES = {
    "unit": "tests/unit/",
    "integration": "tests/integration/",
    "e2e": "tests/e2e/",
}


def run_suite(name, path):
    logger.info("Running %s tests", name)
    result = subprocess.run(
        [sys.executable, "-m", "pytest", path, f"--junitxml=test-results/{name}.xml", "-v"],
        capture_output=True,
        text=True,
    )
    if result.returncode != 0:
        logger.error("%s tests failed:\n%s", name, result.stdout)
        return False
    return True


def main():
    Path("test-results").mkdir(exist_ok=True)
    ok = all(run_suite(name, path) for name, path in SUITES.items())
    sys.exit(0 if ok else 1)


if __name__ == "__main__":
    main()
`

const genericPython = `#!/usr/bin/env python3
"""{{.Requirements}}"""

import logging

logging.basicConfig(level=logging.INFO)
logger = logging.getLogger(__name__)


def main():
    logger.info("Starting automation script")
    # Implement: {{.Requirements}}
    logger.info("Automation script completed")


if __name__ == "__main__":
    main()
`
