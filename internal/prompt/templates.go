package prompt

// Instruction templates, one fixed set per target kind. Interpolated with
// Sprintf; the %s slots are documented next to each template.

// dockerfileInfoTemplate: project type, dependency manifest content, file list.
const dockerfileInfoTemplate = `You are a developer AI assistant who has knowledge in all programming languages. Can you help in identifying the contents required for a docker file with the following information. Always use latest images for base image like FROM python:latest
project_type: %s
project_dependency_object_content: %s
project_files: %s

output should be simple and crystal clear without any explanation about it like

    "base_image": "python:latest",
    "run_instructions": "yum update -y",
    "copy_instructions": "COPY . /app/",
    "install_instructions": "RUN pip install -r requirements.txt",
    "expose_port": "EXPOSE 8080",
    "run_as_user": "USER app",
    "entry_point": "ENTRYPOINT [\"python\"]"`

// dockerfileGenerationTemplate: project type, content info from the first pass.
const dockerfileGenerationTemplate = `You are a Dockerfile generation AI assistant. Your task is to generate a Dockerfile by following the best practices based on the provided details and instructions.
Project Type: %s
Dockerfile content information: %s

1. Always prefer to use base image of the dockerfile based on project type specified
2. After base image information, Add instructions with RUN to update and upgrade image to fix any security patches or bugs. Like yum update -y or apt update -y, etc..
3. Don't use wrapper binaries for project that need compilation like use mvn instead of mvnw. Also make sure you use only official binaries instead of binaries that are listed from third party services.
4. Try to identify the list of all the dependencies required for the project along with their versions from the Dependency Object Content details provided in the prompt.
5. Try to add instructions to clean any files that are not required for running the application. For example for building a go binary all go modules are needed. But after the binary was built, there is no need to keep the dependency files. But on the other hand, if it is a python project all the dependencies should be present as it uses those files during runtime.
6. Make sure to add instructions to copy all the required files from the dependency object content to the docker container. Like COPY . /app/ or COPY src/ /app/ or ADD . /app or ADD src /app. These instructions should be present before the compilation of the source code instructions provided like RUN mvn clean package or RUN go build
7. Make sure to add instructions to install all the required dependencies for the application. Like RUN mvn clean package or go build. Always make sure this should be present after the COPY or ADD instruction of the source code. Don't use wrapper binaries like .mvnw
8. Make sure to add instructions to expose the port required for the application to run. Like EXPOSE 8080 or EXPOSE 5000 and please add it to top of the instructions after FROM and before COPY
9. Make sure to add instructions to specify the entry point for the application. Like ENTRYPOINT ["python"] or ENTRYPOINT ["./app"]
10. Make sure to add instructions to define the working directory for the application. Like WORKDIR /app
11. Make sure to add instructions to define the environment variables for the application. Like ENV PORT=8080 or ENV DB_HOST=localhost
12. In the end create a user, assign appropriate permissions to that user on all the application files after installing the required dependencies and generating the binary. For example RUN useradd appuser && chown -R appuser:appuser /app
13. Add instruction to run the docker image under that specific user. Like USER appuser
14. Make sure we have appropriate entrypoint or CMD at the end of all instructions in the dockerfile
15. Also consider underlying OS platform information while building dockerfile
16. Make sure to use the latest version of the base latest debian image
17. Don't use dependency:go-offline mode in dockerfile and take dependencies from the dependency object content provided in the prompt
18. In CMD or entry point specify the entry point paths correct instead of using wildcards by evaluating the dependency objects configuration.

Also make sure that output should be simple and crystal without any detailed explanation about the instructions in the response, like

"FROM python:latest

# Creating Application Source Code Directory
RUN mkdir -p /usr/src/app"`

// dockerfileFixTemplate: build error, current Dockerfile content.
const dockerfileFixTemplate = `You are an expert in fixing issues in Dockerfile that raise during docker build. I am getting the following error %s when building docker image with the following Dockerfile content
%s
Can you please update the content with appropriate fix and provide me correct dockerfile without any explanation. For example, the output should be straight forward as follows
"FROM python:latest

# Creating Application Source Code Directory
RUN mkdir -p /usr/src/app"`

// supervisorTemplate: free-form requirement text.
const supervisorTemplate = `You are an AWS ECS expert. Classify the input requirement and output the setup pattern (either "fargate" or "ec2-autoscaling") without any additional text or explanations.
Input: %s
Output: `

// clusterFargateTemplate: IaC dialect ("Terraform" or "CloudFormation"), requirement.
const clusterFargateTemplate = `You are a %s expert who generates AWS ECS Fargate configuration for multiple environments.
Initial requirement: %s

Please provide the following details:
1. Name of the ECS cluster.
2. VPC ID to associate the ECS cluster with.
3. Number of Fargate tasks required.
4. CPU and memory resources for each task (e.g., 512 vCPU, 1024 MiB memory).
5. Any specific tags to be applied to the cluster (format: key=value, multiple tags separated by commas).
6. Additional networking requirements, if any (e.g., subnets, security groups).`

// clusterEC2Template: IaC dialect, requirement.
const clusterEC2Template = `You are a %s expert who generates AWS ECS EC2 Autoscaling configuration for multiple environments.
Initial requirement: %s

Please provide the following details:
1. Name of the ECS cluster.
2. VPC ID to associate the ECS cluster with.
3. Number of EC2 instances needed for autoscaling.
4. EC2 instance types to be used (e.g., t3.medium).
5. Autoscaling policy (e.g., target tracking, step scaling, desired capacity).
6. Any specific tags to be applied to the cluster (format: key=value, multiple tags separated by commas).
7. Additional networking requirements, if any (e.g., subnets, security groups).
8. Details for creating an Auto Scaling Group.`

// taskDefinitionTemplate: Dockerfile content.
const taskDefinitionTemplate = `Generate a task definition JSON based on the Dockerfile content provided.
Dockerfile content: %s

The task definition JSON should include:
- Family name
- Container definitions with name, image, CPU, memory, port mappings, environment variables, command, working directory, and log configuration.

Make sure to correctly pick up the image, port number, and other details from the Dockerfile to create an accurate task definition file.

The output must be in JSON format, enclosed in triple backticks with the 'json' marker.`

// terraformFargateTemplate: cluster details, task definition JSON.
const terraformFargateTemplate = `Based on all the details provided:
ECS cluster details: %s
Task Definition JSON: %s

Generate reusable Terraform configurations for the ECS Fargate and its dependent resources. Ensure the configuration follows best practices and includes necessary comments for clarity.

Note:
1. Do not use any hardcoded resource IDs in the code.
2. Avoid using data sources unless you need to fetch region, availability zones, and current user details.
3. Always generate end-to-end code using Terraform.
4. Use task definition content to create ECS task definition resource.
5. Avoid cyclic dependencies in the code. Specifically, ensure that:
   a. Security groups for the ALB and ECS tasks are defined separately and do not reference each other.
   b. Use the depends_on attribute appropriately to handle dependencies between resources without creating cycles.
6. Include all necessary networking components such as custom VPC, subnets, IGW, and security groups.
7. Ensure to create IAM roles required for the ECS tasks and task execution, including policies for necessary permissions.
8. Create an Application Load Balancer (ALB) to distribute traffic to the ECS tasks. Configure necessary listeners, target groups, and security groups for the ALB.
9. User should be able to run the code without being prompted for any additional inputs.
10. Do not refer to undeclared variables or resources in the code.

The output should be in code format and enclosed in triple backticks with the 'hcl' marker.`

// terraformEC2Template: cluster details, task definition JSON.
const terraformEC2Template = `Based on all the details provided:
ECS cluster details: %s
Task Definition JSON: %s

Generate reusable Terraform configurations for the ECS EC2 Autoscaling and its dependent resources, including the Auto Scaling Group (ASG). Ensure the configuration follows best practices and includes necessary comments for clarity.

Note:
1. Do not use any hardcoded resource IDs in the code.
2. Avoid using data sources unless you need to fetch region, availability zones, and current user details.
3. Always generate end-to-end code using Terraform.
4. Use task definition content to create ECS task definition resource.
5. Avoid cyclic dependencies in the code. Specifically, ensure that:
   a. Security groups for the ALB and ECS tasks are defined separately and do not reference each other.
   b. Use the depends_on attribute appropriately to handle dependencies between resources without creating cycles.
6. Include all necessary networking components such as custom VPC, subnets, IGW, NATGW, and security groups.
7. Ensure to create IAM roles required for the ECS tasks and task execution, including policies for necessary permissions.
8. Create an Application Load Balancer (ALB) to distribute traffic to the ECS tasks. Configure necessary listeners, target groups, and security groups for the ALB.
9. Include Auto Scaling Group (ASG) configuration for the EC2 instances.
10. User should be able to run the code without being prompted for any additional inputs.
11. Do not refer to undeclared variables or resources in the code.

The output should be in code format and enclosed in triple backticks with the 'hcl' marker.`

// cloudFormationTemplate: cluster details, task definition JSON.
const cloudFormationTemplate = `Based on all the details provided:
ECS cluster details: %s
Task Definition JSON: %s

Generate a CloudFormation template for the ECS Fargate and its dependent resources. Ensure the template follows best practices and includes necessary comments for clarity.

Note:
1. Do not use any hardcoded resource IDs in the code.
2. Avoid using data sources unless you need to fetch region, availability zones, and current user details.
3. Always generate end-to-end code using CloudFormation.
4. Use task definition content to create ECS task definition resource.
5. Avoid cyclic dependencies in the code. Specifically, ensure that:
   a. Security groups for the ALB and ECS tasks are defined separately and do not reference each other.
   b. Use the DependsOn attribute appropriately to handle dependencies between resources without creating cycles.
   c. Avoid Conditions if not required.
6. Include all necessary networking components such as custom VPC, subnets, IGW, and security groups.
7. Ensure to create IAM roles required for the ECS tasks and task execution, including policies for necessary permissions.
8. Create an Application Load Balancer (ALB) to distribute traffic to the ECS tasks. Configure necessary listeners, target groups, and security groups for the ALB.
9. User should be able to run the code without being prompted for any additional inputs.
10. Do not refer to undeclared variables or resources in the code.
11. Create a standard end-to-end template for one environment and not for multiple environments like staging, dev, pre-prod, etc.
12. Use security best practices to build policies, roles using least privilege.

The output should be in YAML format and enclosed in triple backticks with the 'yaml' marker.`

// buildspecTemplate: Dockerfile content, ECR repository name, ECR repository
// URI, runtime version line, again the URI, install commands, build commands.
const buildspecTemplate = `1. You are an AWS CodeBuild expert.
2. Generate a buildspec file for building, tagging, and pushing a Docker image to Amazon ECR based on the provided Dockerfile content and ECR repository details including clone steps as pre-requisite.

Dockerfile content: %s
ECR Repository Name: %s
ECR Repository URI: %s

3. The buildspec file must adhere to the Dockerfile content and ECR details. Include all necessary phases and commands, following AWS best practices for security and efficiency.
4. Use only the latest of prescribed image runtime versions %s - dotnet, golang, ruby, python, php, nodejs, java

version: 0.2

phases:
  install:
    runtime-versions:
      %s
    commands:
%s

  pre_build:
    commands:
      - echo "Logging in to Amazon ECR..."
      - aws ecr get-login-password --region $AWS_DEFAULT_REGION | docker login --username AWS --password-stdin %s
      - REPOSITORY_URI=%s
      - IMAGE_TAG=$CODEBUILD_RESOLVED_SOURCE_VERSION

  build:
    commands:
%s
      - echo "Building Docker image..."
      - docker build -t $REPOSITORY_URI:$IMAGE_TAG .

  post_build:
    commands:
      - echo "Pushing the Docker image to ECR..."
      - docker push $REPOSITORY_URI:$IMAGE_TAG

Ensure that the generated buildspec includes all necessary phases and commands, and follows AWS best practices for security and efficiency.

The output must be in YAML format, enclosed in triple backticks with the 'yaml' marker.
Do not include any additional text or explanations outside the code block.`
